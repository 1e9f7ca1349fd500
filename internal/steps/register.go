package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/drexlabs/autofarm/internal/metrics"
)

// The registration API wraps every reply in the same envelope.
type apiEnvelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

type apiClient struct {
	base string
	hc   *http.Client
	log  zerolog.Logger
}

func newAPIClient(base, proxyURL string, log zerolog.Logger) *apiClient {
	tr := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			tr.Proxy = http.ProxyURL(u)
		}
	}
	return &apiClient{
		base: base,
		hc:   &http.Client{Transport: tr, Timeout: 20 * time.Second},
		log:  log,
	}
}

// doJSON performs one API call with bounded transport-level retry: network
// errors and 5xx responses are retried with exponential delay. This sits
// below the step retry executor and is independent of it.
func (c *apiClient) doJSON(ctx context.Context, method, path string, body any, out *apiEnvelope) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		payload = b
	}

	const maxAttempts = 3
	backoff := time.Second
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, c.base+path, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.hc.Do(req)
		if err != nil {
			lastErr = err
		} else {
			rb, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			if resp.StatusCode < 500 {
				if resp.StatusCode != http.StatusOK {
					return fmt.Errorf("http %d: %s", resp.StatusCode, string(rb))
				}
				if err := json.Unmarshal(rb, out); err != nil {
					return fmt.Errorf("decode envelope: %w", err)
				}
				return nil
			}
			lastErr = fmt.Errorf("http %d", resp.StatusCode)
		}
		if attempt < maxAttempts {
			c.log.Debug().Err(lastErr).Int("attempt", attempt).Msg("api call failed, backing off")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	return lastErr
}

// Register checks the registration status for the wallet and, when not yet
// registered, submits the register call. An already-registered wallet is a
// no-op success.
func (e *Env) Register(ctx context.Context) bool {
	ok := e.registerOnce(ctx)
	metrics.Step("register", ok)
	return ok
}

func (e *Env) registerOnce(ctx context.Context) bool {
	api := newAPIClient(e.Cfg.Network.RegisterAPI, e.Wallet.Proxy, e.Log)
	addr := e.Wallet.Address.Hex()

	var status apiEnvelope
	if err := api.doJSON(ctx, http.MethodGet, "/profile/status?address="+addr, nil, &status); err != nil {
		e.Log.Error().Err(err).Msg("registration status check failed")
		return false
	}
	if status.Status {
		e.Log.Info().Bool("ok", true).Msg("already registered")
		return true
	}

	var reg apiEnvelope
	err := api.doJSON(ctx, http.MethodPost, "/profile/register", map[string]string{
		"walletAddress": addr,
		"referralBy":    e.Cfg.Bot.ReferralCode,
	}, &reg)
	if err != nil {
		e.Log.Error().Err(err).Msg("register call failed")
		return false
	}
	if !reg.Status {
		e.Log.Warn().Str("message", reg.Message).Msg("register rejected")
		return false
	}
	e.Log.Info().Bool("ok", true).Msg("registered")
	return true
}
