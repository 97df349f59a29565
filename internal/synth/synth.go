// Package synth fabricates plausible scan findings for when the real
// scanner backend cannot be reached. Output is deterministic per domain so
// repeated fallback scans of the same target agree with each other.
package synth

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/buihoanganh/webcheck/internal/scan"
	"github.com/zeebo/xxh3"
)

var certIssuers = []string{
	"Let's Encrypt",
	"DigiCert Inc",
	"Sectigo Limited",
	"GlobalSign",
	"Amazon",
}

var cipherSuites = []string{
	"TLS_AES_256_GCM_SHA384",
	"TLS_AES_128_GCM_SHA256",
	"TLS_CHACHA20_POLY1305_SHA256",
	"ECDHE-RSA-AES256-GCM-SHA384",
}

var securityHeaders = []string{
	"Strict-Transport-Security",
	"X-Content-Type-Options",
	"X-Frame-Options",
	"Content-Security-Policy",
	"X-XSS-Protection",
	"Referrer-Policy",
	"Permissions-Policy",
}

// serviceNames mirrors the common-port catalogue real scanners probe.
var serviceNames = map[int]string{
	21:   "FTP",
	22:   "SSH",
	25:   "SMTP",
	3306: "MySQL",
	5432: "PostgreSQL",
	6379: "Redis",
	8080: "HTTP-Alt",
	8443: "HTTPS-Alt",
}

var riskyPorts = []int{21, 22, 25, 3306, 5432, 6379, 8080, 8443}

var subdomainNames = []string{
	"www", "mail", "ftp", "api", "dev", "staging", "beta",
	"blog", "shop", "vpn", "admin", "cdn", "docs",
}

// Generator is the fallback finding producer. It satisfies the same
// contract as the backend client, so the orchestrator can swap one for the
// other without anything downstream noticing a shape difference.
type Generator struct{}

// Scan fabricates findings for every requested category. The result is
// tagged synthetic so consumers are never misled that the data came from a
// real probe.
func (Generator) Scan(_ context.Context, domain string, categories []scan.Category) (*scan.Result, error) {
	result := &scan.Result{
		Domain:     domain,
		Timestamp:  time.Now(),
		Categories: make(map[scan.Category][]scan.Finding, len(categories)),
		Synthetic:  true,
		Provenance: scan.ProvenanceSynthetic,
	}
	for _, cat := range categories {
		// One rng per category keeps each section stable regardless of
		// which other categories were requested.
		rng := rand.New(rand.NewSource(int64(xxh3.HashString(domain + ":" + string(cat)))))
		switch cat {
		case scan.CategorySSL:
			result.Categories[cat] = sslFindings(rng)
		case scan.CategoryHeaders:
			result.Categories[cat] = headerFindings(rng)
		case scan.CategoryPorts:
			result.Categories[cat] = portFindings(rng)
		case scan.CategorySubdomains:
			result.Categories[cat] = subdomainFindings(rng, domain)
		}
	}
	return result, nil
}

func sslFindings(rng *rand.Rand) []scan.Finding {
	issuer := certIssuers[rng.Intn(len(certIssuers))]
	valid := scan.NewFinding("SSL Certificate Valid", "pass", "Valid SSL/TLS certificate detected")
	valid.Details = fmt.Sprintf("Issuer: %s", issuer)
	valid.Where = "Transport Layer"

	days := 10 + rng.Intn(350)
	var expiry scan.Finding
	if days > 30 {
		expiry = scan.NewFinding("Certificate Expiration", "pass", "Certificate expiration is not imminent")
	} else {
		expiry = scan.NewFinding("Certificate Expiration", "warning", "Certificate will expire soon")
		expiry.Risk = "An expired certificate breaks HTTPS for every visitor"
		expiry.Mitigation = "Renew the certificate before the expiry date"
	}
	expiry.Details = fmt.Sprintf("Expires in %d days", days)
	expiry.Where = "Transport Layer"

	cipher := scan.NewFinding("SSL/TLS Cipher Strength", "pass", "Strong encryption cipher detected")
	cipher.Details = fmt.Sprintf("Cipher: %s", cipherSuites[rng.Intn(len(cipherSuites))])
	cipher.Where = "Transport Layer"

	return []scan.Finding{valid, expiry, cipher}
}

func headerFindings(rng *rand.Rand) []scan.Finding {
	present := 2 + rng.Intn(len(securityHeaders)-1)
	found := securityHeaders[:present]
	missing := securityHeaders[present:]

	status := "warning"
	if len(found) >= 4 {
		status = "pass"
	}
	headers := scan.NewFinding("Security Headers", status,
		fmt.Sprintf("Found %d important security headers", len(found)))
	headers.Details = fmt.Sprintf("Headers: %s", strings.Join(found, ", "))
	headers.Where = "Application Layer"

	findings := []scan.Finding{headers}
	if len(missing) > 0 {
		shown := missing
		ellipsis := ""
		if len(shown) > 3 {
			shown = shown[:3]
			ellipsis = "..."
		}
		f := scan.NewFinding("Missing Security Headers", "warning",
			fmt.Sprintf("Missing %d recommended security headers", len(missing)))
		f.Details = fmt.Sprintf("Missing: %s%s", strings.Join(shown, ", "), ellipsis)
		f.Where = "Application Layer"
		f.Mitigation = "Add the missing response headers at the web server or CDN"
		findings = append(findings, f)
	}

	access := scan.NewFinding("Website Accessibility", "pass", "Website is accessible and responding")
	access.Details = "HTTP 200"
	return append(findings, access)
}

func portFindings(rng *rand.Rand) []scan.Finding {
	httpsOpen := rng.Intn(10) != 0
	httpOpen := rng.Intn(2) == 0
	var unexpected []int
	for _, p := range riskyPorts {
		if rng.Intn(6) == 0 {
			unexpected = append(unexpected, p)
		}
	}

	if !httpsOpen && !httpOpen && len(unexpected) == 0 {
		return []scan.Finding{
			scan.NewFinding("Port Exposure", "pass", "No common ports exposed"),
		}
	}

	var findings []scan.Finding
	if len(unexpected) > 0 {
		ports := make([]string, 0, len(unexpected))
		names := make([]string, 0, len(unexpected))
		for _, p := range unexpected {
			ports = append(ports, fmt.Sprintf("%d", p))
			names = append(names, serviceNames[p])
		}
		f := scan.NewFinding("Exposed Services", "warning", "Unexpected open ports detected")
		f.Details = fmt.Sprintf("Ports: %s (%s)", strings.Join(ports, ", "), strings.Join(names, ", "))
		f.Where = "Network Layer"
		f.Risk = "Exposed services widen the attack surface"
		f.Mitigation = "Close unused ports or restrict them with a firewall"
		findings = append(findings, f)
	}

	switch {
	case httpsOpen:
		https := scan.NewFinding("HTTPS Support", "pass", "HTTPS port is open and accessible")
		https.Where = "Network Layer"
		findings = append(findings, https)
	case httpOpen:
		https := scan.NewFinding("HTTPS Support", "warning", "HTTP available but HTTPS not detected")
		https.Where = "Network Layer"
		https.Mitigation = "Serve the site over HTTPS and redirect plain HTTP"
		findings = append(findings, https)
	}
	return findings
}

func subdomainFindings(rng *rand.Rand, domain string) []scan.Finding {
	var found []string
	for _, name := range subdomainNames {
		if rng.Intn(3) == 0 {
			found = append(found, name+"."+domain)
		}
	}
	if len(found) == 0 {
		return []scan.Finding{
			scan.NewFinding("Subdomain Enumeration", "pass", "No common subdomains found"),
		}
	}

	expected := map[string]struct{}{
		"www." + domain:  {},
		"mail." + domain: {},
		"ftp." + domain:  {},
	}
	var unexpected, dev []string
	for _, s := range found {
		if _, ok := expected[s]; !ok {
			unexpected = append(unexpected, s)
		}
		for _, marker := range []string{"dev", "staging", "test", "beta"} {
			if strings.HasPrefix(s, marker+".") {
				dev = append(dev, s)
				break
			}
		}
	}

	status := "pass"
	if len(unexpected) > 0 {
		status = "warning"
	}
	shown := found
	ellipsis := ""
	if len(shown) > 5 {
		shown = shown[:5]
		ellipsis = "..."
	}
	enum := scan.NewFinding("Subdomain Enumeration", status,
		fmt.Sprintf("Found %d accessible subdomain(s)", len(found)))
	enum.Details = fmt.Sprintf("Subdomains: %s%s", strings.Join(shown, ", "), ellipsis)
	enum.Where = "DNS"

	findings := []scan.Finding{enum}
	if len(dev) > 0 {
		f := scan.NewFinding("Development Environments", "warning",
			"Development/staging environments may be exposed")
		f.Details = fmt.Sprintf("Found: %s", strings.Join(dev, ", "))
		f.Where = "DNS"
		f.Mitigation = "Restrict non-production environments to internal networks"
		findings = append(findings, f)
	}
	return findings
}
