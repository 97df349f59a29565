package scan

import (
	"fmt"
	"strings"

	sharederrors "github.com/buihoanganh/webcheck/internal/shared/errors"
)

// maxDomainLength is the RFC 1035 limit for a full domain name.
const maxDomainLength = 253

// ValidateDomain checks a domain against standard DNS-label grammar:
// alphanumeric/hyphen labels of at most 63 characters separated by dots,
// no leading or trailing hyphen per label, and an alphabetic final label.
func ValidateDomain(domain string) error {
	if domain == "" || len(domain) > maxDomainLength {
		return fmt.Errorf("%w: %q", sharederrors.ErrInvalidDomain, domain)
	}
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return fmt.Errorf("%w: %q", sharederrors.ErrInvalidDomain, domain)
	}
	for i, label := range labels {
		last := i == len(labels)-1
		if !validLabel(label, last) {
			return fmt.Errorf("%w: %q", sharederrors.ErrInvalidDomain, domain)
		}
	}
	return nil
}

func validLabel(label string, final bool) bool {
	if len(label) == 0 || len(label) > 63 {
		return false
	}
	for i := 0; i < len(label); i++ {
		ch := label[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9', ch == '-':
			// The TLD label must be purely alphabetic.
			if final {
				return false
			}
			if ch == '-' && (i == 0 || i == len(label)-1) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
