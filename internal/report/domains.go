package report

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

const (
	// registrarTimeout bounds each availability lookup. Domain checks
	// are decoration on the report; they must never hold it hostage.
	registrarTimeout = 5 * time.Second

	rdapDefaultBaseURL = "https://rdap.org"

	maxDomainSuggestions = 8
	maxCandidateNames    = 4

	sourceRDAP      = "rdap"
	sourceHeuristic = "heuristic"
)

var domainTLDs = []string{".com", ".io", ".app"}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// AvailabilityChecker answers whether a single domain is registerable.
type AvailabilityChecker interface {
	Available(ctx context.Context, domain string) (bool, error)
}

// RDAPChecker queries an RDAP aggregator: a 404 for a domain means it
// is unregistered.
type RDAPChecker struct {
	client  *http.Client
	baseURL string
}

func NewRDAPChecker(baseURL string) *RDAPChecker {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = rdapDefaultBaseURL
	}
	return &RDAPChecker{
		client:  &http.Client{Timeout: registrarTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *RDAPChecker) Available(ctx context.Context, domain string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, registrarTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/domain/"+domain, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound:
		return true, nil
	case http.StatusOK:
		return false, nil
	default:
		return false, fmt.Errorf("rdap lookup for %s: status %d", domain, resp.StatusCode)
	}
}

// suggestDomains builds candidate domains from the idea title and
// checks each one. When the checker is nil or a lookup fails, the
// verdict falls back to a deterministic hash so suggestions stay stable
// across runs. Available domains sort first, then .com, then shorter.
func suggestDomains(ctx context.Context, checker AvailabilityChecker, title string) []models.DomainSuggestion {
	names := candidateNames(title)
	if len(names) == 0 {
		return nil
	}

	var suggestions []models.DomainSuggestion
	for _, name := range names {
		for _, tld := range domainTLDs {
			domain := name + tld
			suggestion := models.DomainSuggestion{Domain: domain, Source: sourceHeuristic}

			if checker != nil {
				available, err := checker.Available(ctx, domain)
				if err == nil {
					suggestion.Available = available
					suggestion.Source = sourceRDAP
				} else {
					log.Debug().Err(err).Str("domain", domain).Msg("Availability lookup failed, using heuristic")
				}
			}
			if suggestion.Source == sourceHeuristic {
				suggestion.Available = hashAvailable(domain)
			}

			suggestions = append(suggestions, suggestion)
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.Available != b.Available {
			return a.Available
		}
		aCom := strings.HasSuffix(a.Domain, ".com")
		bCom := strings.HasSuffix(b.Domain, ".com")
		if aCom != bCom {
			return aCom
		}
		if len(a.Domain) != len(b.Domain) {
			return len(a.Domain) < len(b.Domain)
		}
		return a.Domain < b.Domain
	})

	if len(suggestions) > maxDomainSuggestions {
		suggestions = suggestions[:maxDomainSuggestions]
	}
	return suggestions
}

// candidateNames derives name variants from a title: the bare slug plus
// common prefix and suffix forms.
func candidateNames(title string) []string {
	slug := nonAlnum.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "")
	if slug == "" {
		return nil
	}
	if len(slug) > 20 {
		slug = slug[:20]
	}

	variants := []string{slug, "get" + slug, slug + "app", slug + "hq"}
	if len(variants) > maxCandidateNames {
		variants = variants[:maxCandidateNames]
	}
	return variants
}

// hashAvailable is the deterministic stand-in verdict for unchecked
// domains. Not a real availability signal, but stable for caching and
// tests.
func hashAvailable(domain string) bool {
	h := fnv.New32a()
	h.Write([]byte(domain))
	return h.Sum32()%2 == 0
}
