package enrich

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
)

// titlePattern pulls the first html title out of a landing page
var titlePattern = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)

const httpBodyLimit = 64 * 1024

// FingerprintHTTP fetches the first answering web interface on the
// default and alternate ports and records its server header and page
// title. Device certificates are self signed as a rule, so
// verification is off.
func (p *NetworkProber) FingerprintHTTP(ctx context.Context, ip string) map[string]string {
	client := &http.Client{
		Timeout: p.timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}

	defer client.CloseIdleConnections()

	urls := []string{
		fmt.Sprintf("http://%s/", ip),
		fmt.Sprintf("https://%s/", ip),
		fmt.Sprintf("http://%s:8080/", ip),
		fmt.Sprintf("https://%s:8443/", ip),
	}

	for _, target := range urls {
		if info := FetchWebInfo(ctx, client, target); info != nil {
			return info
		}
	}

	return nil
}

// FetchWebInfo requests one url and extracts the server header and
// html title from a 200 response; anything else reads as nil
func FetchWebInfo(
	ctx context.Context,
	client *http.Client,
	target string,
) map[string]string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)

	if err != nil {
		return nil
	}

	resp, err := client.Do(req)

	if err != nil {
		return nil
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	info := map[string]string{}

	if server := resp.Header.Get("Server"); server != "" {
		info["server"] = server
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, httpBodyLimit))

	if err == nil {
		if match := titlePattern.FindSubmatch(body); match != nil {
			info["title"] = strings.TrimSpace(string(match[1]))
		}
	}

	return info
}
