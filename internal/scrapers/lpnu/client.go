package lpnu

import (
	"bytes"
	"context"
	"fmt"
	"lpnu-schedule/internal/components/assert"
	"lpnu-schedule/internal/components/telemetry"
	"lpnu-schedule/pkg/restyutil"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"
)

const (
	report_client_fetch                = "client.fetch"
	report_client_parse_institutes     = "client.parse-institutes"
	report_client_parse_groups         = "client.parse-groups"
	report_client_parse_group_schedule = "client.parse-group-schedule"
)

const (
	DefaultBaseUrl   = "https://student.lpnu.ua"
	schedulePath     = "/students_schedule"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
)

type ClientOptions struct {
	BaseUrl string
	// RequestsPerSecond limits outgoing requests, 0 disables the limit.
	RequestsPerSecond float64
	Timeout           time.Duration
	UserAgent         string
	CloudflareBypass  bool
	// DumpDir, when set, receives a copy of every response.
	DumpDir   string
	Extractor FieldExtractor
}

// Client fetches and parses the pages of the public schedule site.
type Client struct {
	baseUrl *url.URL
	http    *resty.Client
	walker  Walker
	tel     telemetry.API

	pagesFetched  metric.Int64Counter
	entriesParsed metric.Int64Counter
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("lpnu_scraper", tel)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	httpClient.SetTimeout(opts.Timeout)
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	if opts.RequestsPerSecond > 0 {
		// burst of 1 keeps requests evenly spaced
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, tel)
	if opts.DumpDir != "" {
		err = restyutil.DumpResponses(httpClient, opts.DumpDir)
		if err != nil {
			return nil, fmt.Errorf("dump responses: %w", err)
		}
	}

	meter := otel.Meter("lpnu-schedule/scraper")
	pagesFetched, err := meter.Int64Counter("lpnu.pages_fetched")
	if err != nil {
		return nil, err
	}
	entriesParsed, err := meter.Int64Counter("lpnu.entries_parsed")
	if err != nil {
		return nil, err
	}

	return &Client{
		baseUrl:       baseUrl,
		http:          httpClient,
		walker:        NewWalker(opts.Extractor),
		tel:           tel,
		pagesFetched:  pagesFetched,
		entriesParsed: entriesParsed,
	}, nil
}

func (c *Client) scheduleUrl(query url.Values) string {
	link := c.baseUrl.JoinPath(schedulePath)
	link.RawQuery = query.Encode()
	return link.String()
}

// InstitutesUrl is the page listing every institute.
func (c *Client) InstitutesUrl() string {
	return c.scheduleUrl(url.Values{})
}

// GroupsUrl is the page listing every group of an institute.
func (c *Client) GroupsUrl(institute string) string {
	return c.scheduleUrl(url.Values{
		"institutecode_selective": {institute},
	})
}

// ScheduleUrl is the weekly schedule page of a group.
func (c *Client) ScheduleUrl(institute, group string) string {
	return c.scheduleUrl(url.Values{
		"institutecode_selective": {institute},
		"edugrupabr_selective":    {group},
		"semestrduration":         {"1"},
	})
}

// Fetch retrieves and parses an html page, failures are *RetrievalError.
func (c *Client) Fetch(ctx context.Context, link string) (*goquery.Document, error) {
	c.tel.ReportDebug(report_client_fetch, link)

	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, &RetrievalError{Url: link, Cause: err}
	}
	if res.IsError() {
		return nil, &RetrievalError{Url: link, Cause: fmt.Errorf("unexpected status: %s", res.Status())}
	}
	c.pagesFetched.Add(ctx, 1)

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, &RetrievalError{Url: link, Cause: fmt.Errorf("parse html: %w", err)}
	}
	doc.Url, err = url.Parse(link)
	if err != nil {
		c.tel.ReportWarning(report_client_fetch, fmt.Errorf("parse document url: %w", err), link)
	}
	return doc, nil
}

func (c *Client) ParseInstitutes(ctx context.Context, link string) ([]string, error) {
	doc, err := c.Fetch(ctx, link)
	if err != nil {
		return nil, err
	}
	institutes, err := ParseInstitutesDocument(doc)
	if err != nil {
		c.tel.ReportBroken(report_client_parse_institutes, err, link)
		return nil, err
	}
	return institutes, nil
}

func (c *Client) ParseGroups(ctx context.Context, link string) ([]string, error) {
	doc, err := c.Fetch(ctx, link)
	if err != nil {
		return nil, err
	}
	groups, err := ParseGroupsDocument(doc)
	if err != nil {
		c.tel.ReportBroken(report_client_parse_groups, err, link)
		return nil, err
	}
	return groups, nil
}

func (c *Client) ParseGroupSchedule(ctx context.Context, link string) ([]ParsedScheduleEntry, error) {
	doc, err := c.Fetch(ctx, link)
	if err != nil {
		return nil, err
	}
	entries, err := ParseScheduleDocument(doc, c.walker)
	if err != nil {
		c.tel.ReportBroken(report_client_parse_group_schedule, err, link)
		return nil, err
	}
	c.entriesParsed.Add(ctx, int64(len(entries)))
	c.tel.ReportDebug(report_client_parse_group_schedule, link, len(entries))
	return entries, nil
}
