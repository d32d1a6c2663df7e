package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/go-playground/validator/v10"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/config"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/lang"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/models"
)

// Error sources reported in PaymentError.Source
const (
	SourceList      = "ListConnection"
	SourceLang      = "LangConnection"
	SourceOperation = "PaymentConnection"
)

const (
	headerAccept      = "Accept"
	headerContentType = "Content-Type"
	headerUserAgent   = "User-Agent"

	paramView = "view"
	valueView = "jsonForms,-htmlForms"

	contentTypeJSON = "application/json"
	valueAppJSON    = "application/json;charset=UTF-8"
	valueAcceptAny  = "text/plain, */*"
)

// HTTPClient implements Client on top of net/http
type HTTPClient struct {
	HTTPClient *http.Client
	UserAgent  string
}

var validate = validator.New()

// NewHTTPClient creates a client using the timeouts of cfg
func NewHTTPClient(cfg *config.Config) *HTTPClient {
	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout()}
	return &HTTPClient{
		HTTPClient: &http.Client{
			Timeout: cfg.RequestTimeout(),
			Transport: &http.Transport{
				DialContext:         dialer.DialContext,
				TLSHandshakeTimeout: cfg.ConnectTimeout(),
			},
		},
		UserAgent: cfg.UserAgent,
	}
}

// GetListResult fetches the list result behind listURL
func (c *HTTPClient) GetListResult(ctx context.Context, listURL string) (*models.ListResult, error) {
	u, err := url.Parse(listURL)
	if err != nil {
		return nil, models.NewInternalError(SourceList, "invalid list url", err)
	}
	q := u.Query()
	q.Set(paramView, valueView)
	u.RawQuery = q.Encode()

	req, err := c.newRequest(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, models.NewInternalError(SourceList, "error generating list request", err)
	}
	req.Header.Set(headerAccept, valueAppJSON)

	body, err := c.do(req, SourceList)
	if err != nil {
		return nil, err
	}

	listResult := &models.ListResult{}
	if err := c.decode(body, listResult); err != nil {
		return nil, models.NewInternalError(SourceList, "error reading list result", err)
	}
	return listResult, nil
}

// LoadLanguageFile downloads the localization table behind langURL
func (c *HTTPClient) LoadLanguageFile(ctx context.Context, langURL string) (*lang.File, error) {
	req, err := c.newRequest(ctx, http.MethodGet, langURL, nil)
	if err != nil {
		return nil, models.NewInternalError(SourceLang, "error generating language request", err)
	}
	req.Header.Set(headerAccept, valueAcceptAny)

	body, err := c.do(req, SourceLang)
	if err != nil {
		return nil, err
	}

	file, err := lang.Parse(string(body))
	if err != nil {
		return nil, models.NewInternalError(SourceLang, "error reading language file", err)
	}
	return file, nil
}

// PostOperation posts operation to its operation link
func (c *HTTPClient) PostOperation(ctx context.Context, operation *models.Operation) (*models.OperationResult, error) {
	if operation == nil || operation.URL == "" {
		return nil, models.NewInternalError(SourceOperation, "missing operation link", nil)
	}
	requestBody, err := json.Marshal(operation.Data)
	if err != nil {
		return nil, models.NewInternalError(SourceOperation, "error encoding operation", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, operation.URL, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, models.NewInternalError(SourceOperation, "error generating operation request", err)
	}
	req.Header.Set(headerContentType, valueAppJSON)
	req.Header.Set(headerAccept, valueAppJSON)

	body, err := c.do(req, SourceOperation)
	if err != nil {
		return nil, err
	}

	result := &models.OperationResult{}
	if err := c.decode(body, result); err != nil {
		return nil, models.NewInternalError(SourceOperation, "error reading operation result", err)
	}
	return result, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	if c.UserAgent != "" {
		req.Header.Set(headerUserAgent, c.UserAgent)
	}
	return req, nil
}

// do performs req and returns the body of a 2xx response
func (c *HTTPClient) do(req *http.Request, source string) ([]byte, error) {
	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Info("connection error", log.Data{"source": source, "url": req.URL.String(), "error": err.Error()})
		return nil, models.NewConnectionError(source, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.NewConnectionError(source, fmt.Errorf("error reading response body: [%w]", err))
	}

	log.Trace("payment api response", log.Data{
		"source":      source,
		"method":      req.Method,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, c.statusError(source, resp, body)
	}
	return body, nil
}

// statusError creates the error for a non 2xx response. The ErrorInfo is optional,
// failing to decode it keeps the status code.
func (c *HTTPClient) statusError(source string, resp *http.Response, body []byte) error {
	pe := &models.PaymentError{
		Source:     source,
		Kind:       models.UnknownError,
		StatusCode: resp.StatusCode,
		Data:       string(body),
		Err:        fmt.Errorf("error status [%d] back from payment api", resp.StatusCode),
	}
	if len(body) == 0 || !strings.Contains(resp.Header.Get(headerContentType), contentTypeJSON) {
		return pe
	}

	info := &models.ErrorInfo{}
	if err := json.Unmarshal(body, info); err != nil {
		log.Info("ignoring undecodable error info", log.Data{"source": source, "error": err.Error()})
		return pe
	}
	if info.Interaction.Code != "" {
		pe.Info = info
		pe.Kind = models.InteractionError
	}
	return pe
}

func (c *HTTPClient) decode(body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return err
	}
	return validate.Struct(v)
}
