package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"quizbuilder_backend/internals/configs"
	dto "quizbuilder_backend/internals/features/quizzes/dto"
	helper "quizbuilder_backend/internals/helpers"
)

const DefaultBaseURL = "http://localhost:5000/api"

// HTTPDoer abstracts the HTTP client; *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a failed call mapped back to the server's error kinds.
type APIError struct {
	Kind    helper.ErrorKind
	Status  int
	Message string
	Fields  helper.FieldErrors
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
}

// IsNotFound reports whether err is an APIError of kind NOT_FOUND.
func IsNotFound(err error) bool { return kindIs(err, helper.KindNotFound) }

// IsValidation reports whether err carries field errors.
func IsValidation(err error) bool { return kindIs(err, helper.KindValidation) }

// IsUnavailable reports whether the server or its store could not be reached.
func IsUnavailable(err error) bool { return kindIs(err, helper.KindStoreUnavailable) }

func kindIs(err error, k helper.ErrorKind) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Kind == k
}

type Client struct {
	BaseURL string
	HTTP    HTTPDoer
}

// New builds a client; an empty baseURL falls back to QUIZ_API_URL and then
// DefaultBaseURL. A nil doer uses http.DefaultClient.
func New(baseURL string, doer HTTPDoer) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = configs.GetEnv("QUIZ_API_URL", DefaultBaseURL)
	}
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: doer}
}

func (c *Client) ListQuizzes(ctx context.Context) ([]dto.QuizListItem, error) {
	var out []dto.QuizListItem
	if err := c.do(ctx, http.MethodGet, "/quizzes", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []dto.QuizListItem{}
	}
	return out, nil
}

func (c *Client) GetQuiz(ctx context.Context, id uuid.UUID) (*dto.QuizResponse, error) {
	var out dto.QuizResponse
	if err := c.do(ctx, http.MethodGet, "/quizzes/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateQuiz validates req locally first; an invalid payload never reaches
// the network.
func (c *Client) CreateQuiz(ctx context.Context, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	if fe := dto.ValidateCreateQuizRequest(req); fe != nil {
		return nil, &APIError{Kind: helper.KindValidation, Message: "validation failed", Fields: fe}
	}
	payload, err := sonic.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "marshal quiz")
	}
	var out dto.QuizResponse
	if err := c.do(ctx, http.MethodPost, "/quizzes", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteQuiz(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/quizzes/"+id.String(), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &APIError{Kind: helper.KindStoreUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Kind: helper.KindStoreUnavailable, Status: resp.StatusCode, Message: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "decode %s %s", method, path)
	}
	return nil
}

func decodeAPIError(status int, raw []byte) *APIError {
	ae := &APIError{Kind: helper.KindFromStatus(status), Status: status}
	var body helper.ErrorResponse
	if err := sonic.Unmarshal(raw, &body); err == nil && body.Error != "" {
		ae.Message = body.Error
		ae.Fields = body.Errors
	} else {
		ae.Message = strings.TrimSpace(string(raw))
		if ae.Message == "" {
			ae.Message = http.StatusText(status)
		}
	}
	return ae
}
