// Package theme handles colour theme loading and hot-reload for datepick.
// It supports loading themes from ~/.config/datepick/themes/ and provides
// embedded bundled themes for use when no custom theme is configured.
package theme
