package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"roomboard/shared/constant"
	"roomboard/shared/failure"
	"roomboard/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	headerETag        = "ETag"
	headerIfNoneMatch = "If-None-Match"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// WithCachedJSON is WithJSON for 200 responses plus an ETag derived from the body. A request
// whose If-None-Match carries the same tag gets 304 with no body.
func WithCachedJSON(writer http.ResponseWriter, request *http.Request, jsonPayload any) {
	body, err := encode(Data[any]{Data: &jsonPayload})
	if err != nil {
		WithError(writer, failure.InternalError(err))

		return
	}

	hash := fnv.New64a()
	_, _ = hash.Write(body)
	etag := fmt.Sprintf(`"%x"`, hash.Sum64())

	writer.Header().Set(headerETag, etag)

	if request.Header.Get(headerIfNoneMatch) == etag {
		writer.WriteHeader(http.StatusNotModified)

		return
	}

	write(writer, http.StatusOK, body)
}

// WithError sends a response with an error message. Server-side failures are logged here so
// handlers only need to log the context they add.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := err.Error()

	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Int("code", code).Msg("request failed")
	}

	response(writer, code, Error{Error: &errMsg})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload any) {
	body, err := encode(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	write(writer, code, body)
}

// encode keeps guest names readable: <, > and & are not escaped.
func encode(payload any) ([]byte, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(payload); err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}

	return buf.Bytes(), nil
}

func write(writer http.ResponseWriter, code int, body []byte) {
	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
