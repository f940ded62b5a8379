package port

// CertificateError describes a TLS certificate that failed validation.
type CertificateError struct {
	URL    string
	Host   string
	Reason string
	// Accepted reports whether the surface proceeded anyway.
	Accepted bool
}
