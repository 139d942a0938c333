package ragflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// HTTPClient talks to a RAGFlow-compatible HTTP API. Transport-level
// concerns (timeout, auth header) live here; payload normalization lives in
// the Parse* helpers so the sync core never sees raw wire shapes.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func (c *HTTPClient) do(req *http.Request) (interface{}, error) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp envelope
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp.Message
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("remote service error: %s", msg)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode remote response: %w", err)
	}
	if env.Code != 0 {
		return nil, fmt.Errorf("remote service error (code %d): %s", env.Code, env.Message)
	}
	return env.Data, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body interface{}) (interface{}, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req)
}

func (c *HTTPClient) Upload(ctx context.Context, datasetRemoteId, filePath, originalFilename string) (*UploadResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open stored file: %w", err)
	}
	defer file.Close()

	if originalFilename == "" {
		originalFilename = filepath.Base(filePath)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", originalFilename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/api/v1/datasets/%s/documents", datasetRemoteId)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	data, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return ParseUploadData(data), nil
}

func (c *HTTPClient) ParseChunks(ctx context.Context, datasetRemoteId string, documentRemoteIds []string) (map[string]interface{}, error) {
	path := fmt.Sprintf("/api/v1/datasets/%s/chunks", datasetRemoteId)
	data, err := c.doJSON(ctx, http.MethodPost, path, map[string]interface{}{
		"document_ids": documentRemoteIds,
	})
	if err != nil {
		return nil, err
	}
	return asObject(data), nil
}

func (c *HTTPClient) StopParsing(ctx context.Context, datasetRemoteId string, documentRemoteIds []string) (map[string]interface{}, error) {
	path := fmt.Sprintf("/api/v1/datasets/%s/chunks", datasetRemoteId)
	data, err := c.doJSON(ctx, http.MethodDelete, path, map[string]interface{}{
		"document_ids": documentRemoteIds,
	})
	if err != nil {
		return nil, err
	}
	return asObject(data), nil
}

func (c *HTTPClient) GetParseStatus(ctx context.Context, datasetRemoteId, documentRemoteId string) (*ParseStatus, error) {
	path := fmt.Sprintf("/api/v1/datasets/%s/documents?id=%s", datasetRemoteId, documentRemoteId)
	data, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	obj := asObject(data)
	docs, ok := obj["docs"].([]interface{})
	if !ok || len(docs) == 0 {
		return nil, fmt.Errorf("document %s not found on remote service", documentRemoteId)
	}
	raw, ok := docs[0].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("malformed status payload for document %s", documentRemoteId)
	}
	return ParseStatusFromPayload(raw), nil
}

func (c *HTTPClient) ListChunks(ctx context.Context, datasetRemoteId, documentRemoteId string) ([]ChunkPayload, error) {
	path := fmt.Sprintf("/api/v1/datasets/%s/documents/%s/chunks", datasetRemoteId, documentRemoteId)
	data, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	obj := asObject(data)
	rawChunks, ok := obj["chunks"].([]interface{})
	if !ok {
		return []ChunkPayload{}, nil
	}
	chunks := make([]ChunkPayload, 0, len(rawChunks))
	for _, item := range rawChunks {
		raw, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		chunks = append(chunks, ChunkFromPayload(raw))
	}
	return chunks, nil
}

func (c *HTTPClient) Delete(ctx context.Context, datasetRemoteId string, documentRemoteIds []string) error {
	path := fmt.Sprintf("/api/v1/datasets/%s/documents", datasetRemoteId)
	_, err := c.doJSON(ctx, http.MethodDelete, path, map[string]interface{}{
		"ids": documentRemoteIds,
	})
	return err
}

func asObject(data interface{}) map[string]interface{} {
	if obj, ok := data.(map[string]interface{}); ok {
		return obj
	}
	return map[string]interface{}{}
}
