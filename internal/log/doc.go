// Package log provides an slog handler that keeps prospect contact data and
// credentials out of log output.
//
// The SecureHandler masks:
//   - attributes named like lead contact fields (email, phone, address)
//   - attributes named like secrets (api_key, token, password)
//   - string values that look like an email address, a Maps API key,
//     a bearer token or a URL with embedded credentials
//
// Masking applies at every level, including debug output.
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Info("lead saved", "business", "Acme", "email", "a@b.test")
//	// email=***REDACTED***
package log
