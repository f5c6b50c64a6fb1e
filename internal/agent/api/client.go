// Package api содержит HTTP-клиент для взаимодействия с сервером notekeeper.
//
// Клиент построен на resty и хранит базовый URL сервера, имя заголовка
// авторизации и токен текущей сессии.
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/");
//   - токен передаётся в заголовке auth-token (имя настраивается);
//   - ответы не 2xx превращаются в *APIError с текстом из поля error
//     или списком ошибок валидации из поля errors.
package api

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	serr "github.com/IvanChernomyrdin/go-notekeeper/internal/shared/errors"
)

const (
	// DefaultAuthHeader имя заголовка с токеном сессии.
	DefaultAuthHeader = "auth-token"
	// DefaultTimeout таймаут одного запроса.
	DefaultTimeout = 10 * time.Second
)

// Client реализует HTTP-клиент для общения с сервером notekeeper.
type Client struct {
	http   *resty.Client
	header string
	token  string
}

// NewClient создаёт клиента для сервера baseURL (например "http://127.0.0.1:8080").
//
// Для https-адресов проверка сертификата отключается, сервер разработки
// поднимается с самоподписанным сертификатом.
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")

	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(DefaultTimeout).
		SetHeader("Accept", "application/json")

	if strings.HasPrefix(baseURL, "https://") {
		rc.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) // только для dev
	}

	return &Client{http: rc, header: DefaultAuthHeader}
}

// WithToken задаёт токен сессии для последующих запросов.
func (c *Client) WithToken(token string) *Client {
	c.token = token
	return c
}

// WithAuthHeader меняет имя заголовка авторизации. Пустое имя игнорируется.
func (c *Client) WithAuthHeader(name string) *Client {
	if name = strings.TrimSpace(name); name != "" {
		c.header = name
	}
	return c
}

// Token возвращает текущий токен сессии.
func (c *Client) Token() string {
	return c.token
}

// APIError ошибка, возвращённая сервером.
type APIError struct {
	Status  int
	Message string
	Fields  []serr.FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		msgs := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			msgs = append(msgs, fmt.Sprintf("%s: %s", f.Param, f.Msg))
		}
		return fmt.Sprintf("http %d: %s", e.Status, strings.Join(msgs, "; "))
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// Unwrap сопоставляет HTTP статус с общими ошибками из пакета errors.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return serr.ErrUnauthenticated
	case e.Status == http.StatusNotFound:
		return serr.ErrNotFound
	case e.Status == http.StatusBadRequest:
		return serr.ErrInvalidInput
	case e.Status >= http.StatusInternalServerError:
		return serr.ErrInternal
	default:
		return nil
	}
}

// errorBody общий формат тела ошибки сервера.
type errorBody struct {
	Error  string            `json:"error"`
	Errors []serr.FieldError `json:"errors"`
}

func (c *Client) request(ctx context.Context) *resty.Request {
	if ctx == nil {
		ctx = context.Background()
	}
	r := c.http.R().SetContext(ctx)
	if c.token != "" {
		r.SetHeader(c.header, c.token)
	}
	return r
}

// do выполняет запрос и декодирует успешный ответ в out (если out != nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	r := c.request(ctx)
	if body != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := r.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if err := mapHTTPError(resp); err != nil {
		return err
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode()}

	var eb errorBody
	if err := json.Unmarshal(resp.Body(), &eb); err == nil {
		apiErr.Message = eb.Error
		apiErr.Fields = eb.Errors
	} else {
		apiErr.Message = strings.TrimSpace(string(resp.Body()))
	}
	if apiErr.Message == "" && len(apiErr.Fields) == 0 {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}
	return apiErr
}
