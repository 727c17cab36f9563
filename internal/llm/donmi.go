package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/nara0/nara/internal/log"
	"github.com/nara0/nara/internal/session"
)

// donmiMaxAttempts bounds the retry loop: one initial try plus two retries.
const donmiMaxAttempts = 3

// missingAnswerFallback is returned when the API answers 200 but the payload
// carries no answer field.
const missingAnswerFallback = "ขออภัย ไม่สามารถตอบคำถามได้ในขณะนี้"

type donmiRequest struct {
	Inputs       donmiInputs `json:"inputs"`
	Citation     bool        `json:"citation"`
	ResponseMode string      `json:"response_mode"`
}

type donmiInputs struct {
	Question string `json:"question"`
}

type donmiResponse struct {
	Answer string `json:"answer"`
}

// Donmi talks to the Donmi knowledge-base API. The API takes one flattened
// prompt per request and answers synchronously, so the whole conversation is
// rendered into the question field.
//
// Transient failures (timeout, connection refused, 429) are retried up to
// donmiMaxAttempts with exponential backoff. Auth and routing failures (401,
// 404) are surfaced immediately.
type Donmi struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     log.Logger

	// sleep waits between attempts; swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func newDonmi(cfg Config, logger log.Logger) (*Donmi, error) {
	if cfg.APIURL == "" {
		return nil, &ConfigError{Err: ErrMissingEndpoint}
	}
	if cfg.APIKey == "" {
		return nil, &ConfigError{Err: ErrMissingAPIKey}
	}

	return &Donmi{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(2), 1),
		logger:     logger,
		sleep:      sleepContext,
	}, nil
}

// Generate implements Provider.
func (d *Donmi) Generate(ctx context.Context, messages []session.Message) (string, error) {
	payload, err := json.Marshal(donmiRequest{
		Inputs:       donmiInputs{Question: flatten(messages)},
		Citation:     d.cfg.Citation,
		ResponseMode: d.cfg.ResponseMode,
	})
	if err != nil {
		return "", fmt.Errorf("marshal donmi request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < donmiMaxAttempts; attempt++ {
		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				return "", fmt.Errorf("rate limit wait: %w", err)
			}
		}

		d.logger.Debug("calling donmi api",
			"url", d.cfg.APIURL,
			"attempt", attempt+1,
			"max_attempts", donmiMaxAttempts,
		)

		answer, err := d.post(ctx, payload)
		if err == nil {
			return answer, nil
		}

		var tr *TransientError
		if !errors.As(err, &tr) {
			return "", err
		}
		lastErr = err

		d.logger.Warn("donmi api attempt failed",
			"attempt", attempt+1,
			"max_attempts", donmiMaxAttempts,
			"reason", tr.Reason,
		)

		// Exponential backoff: 1s, 2s. No sleep after the final attempt.
		if attempt < donmiMaxAttempts-1 {
			delay := time.Duration(1<<attempt) * time.Second
			if err := d.sleep(ctx, delay); err != nil {
				return "", fmt.Errorf("backoff interrupted: %w", err)
			}
		}
	}

	return "", &ExhaustedError{Attempts: donmiMaxAttempts, Last: lastErr}
}

// GenerateWithContext implements Provider.
func (d *Donmi) GenerateWithContext(ctx context.Context, query, docContext, systemPrompt string) (string, error) {
	return d.Generate(ctx, contextMessages(query, docContext, systemPrompt))
}

// ModelInfo implements Provider.
func (d *Donmi) ModelInfo() ModelInfo {
	return ModelInfo{
		Provider:    KindDonmi,
		Model:       d.cfg.Model,
		Temperature: d.cfg.Temperature,
		MaxTokens:   d.cfg.MaxTokens,
	}
}

// post performs one request attempt and classifies the failure mode.
func (d *Donmi) post(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build donmi request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.cfg.APIKey)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		var nerr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
			return "", &TransientError{
				Reason: fmt.Sprintf("Timeout: API ไม่ตอบกลับภายใน %d วินาที", int(d.cfg.Timeout.Seconds())),
				Err:    err,
			}
		}
		return "", &TransientError{
			Reason: fmt.Sprintf("Connection Error: ไม่สามารถเชื่อมต่อไปยัง %s", d.cfg.APIURL),
			Err:    err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		st := &StatusError{Code: resp.StatusCode, Status: resp.Status}
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", &TransientError{Reason: "Rate limit exceeded - กรุณารอสักครู่", Err: st}
		}
		return "", st
	}

	var parsed donmiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode donmi response: %w", err)
	}
	if parsed.Answer == "" {
		return missingAnswerFallback, nil
	}
	return parsed.Answer, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
