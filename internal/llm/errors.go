package llm

import (
	"errors"
	"fmt"
)

// Configuration sentinels, wrapped in ConfigError by the constructors.
var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrMissingEndpoint = errors.New("api_url not specified in config")
	ErrMissingAPIKey   = errors.New("api_key not specified in config")
)

// ConfigError marks an error as a configuration problem the operator must
// fix, as opposed to a transient or upstream failure.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "llm config: " + e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// StatusError is a non-2xx HTTP response from a provider endpoint.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string { return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status) }

// TransientError marks a failure worth retrying: timeouts, connection
// failures, rate limiting. Reason is the operator-facing description used
// when retries run out.
type TransientError struct {
	Reason string
	Err    error
}

func (e *TransientError) Error() string { return e.Reason }
func (e *TransientError) Unwrap() error { return e.Err }

// ExhaustedError reports that every retry attempt failed with a transient
// error. Last is the final attempt's error.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no response after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

// User-facing messages. Thai is the deployment language; these wordings are
// part of the response contract and are not routed through i18n.
const (
	msgBadAPIKey     = "❌ API Key ไม่ถูกต้อง กรุณาตรวจสอบ API Key ในไฟล์ config"
	msgBadAPIURL     = "❌ API URL ไม่ถูกต้อง กรุณาตรวจสอบ URL ในไฟล์ config"
	msgHTTPError     = "❌ เกิดข้อผิดพลาด: %s"
	msgConfigInvalid = "❌ การตั้งค่าไม่ถูกต้อง: %s"
	msgGeneric       = "ขออภัย เกิดข้อผิดพลาด: %v"
	msgUnreachable   = "❌ ไม่สามารถเชื่อมต่อ API ได้: %s\n\n" +
		"กรุณาตรวจสอบ:\n" +
		"1. API URL ถูกต้องหรือไม่\n" +
		"2. API Key ถูกต้องหรือไม่\n" +
		"3. เชื่อมต่ออินเทอร์เน็ตหรือไม่"
)

// UserMessage renders err as the Thai message shown to the end user. The
// typed error is still available to callers; this is only the presentation.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var cfg *ConfigError
	if errors.As(err, &cfg) {
		return fmt.Sprintf(msgConfigInvalid, cfg.Err)
	}

	// Exhausted retries wrap the last transient error, which may itself wrap
	// a 429 StatusError, so this check must come before the status check.
	var ex *ExhaustedError
	if errors.As(err, &ex) {
		return fmt.Sprintf(msgUnreachable, transientReason(ex.Last))
	}

	var st *StatusError
	if errors.As(err, &st) {
		switch st.Code {
		case 401:
			return msgBadAPIKey
		case 404:
			return msgBadAPIURL
		default:
			return fmt.Sprintf(msgHTTPError, st)
		}
	}

	return fmt.Sprintf(msgGeneric, err)
}

func transientReason(err error) string {
	var tr *TransientError
	if errors.As(err, &tr) {
		return tr.Reason
	}
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
