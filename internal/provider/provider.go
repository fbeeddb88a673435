// Package provider contains the catalog projections (Apple Music, Spotify,
// Napster, Deezer) applied to a recognition result.
//
// The Provider interface is defined in internal/metadata (metadata.Provider),
// following the Go convention of defining interfaces where they are consumed.
// Each sub-package here implements that interface for one catalog's
// sub-document of the audd.io response.
package provider
