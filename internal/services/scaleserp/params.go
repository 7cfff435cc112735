package scaleserp

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// EnvAPIKey is the environment variable the FromEnv constructors read
const EnvAPIKey = "SCALE_SERP_KEY"

// DefaultBaseURL is the production ScaleSERP endpoint
const DefaultBaseURL = "https://api.scaleserp.com"

// Preset locations for the convenience constructors. Searches targeted to a
// specific city are more likely to include ads than country-wide ones.
const (
	LocationNewYork      = "New York,New York,United States"
	LocationUnitedStates = "United States"
)

// ErrAPIKeyNotSet is returned by the FromEnv constructors when SCALE_SERP_KEY
// is unset. Explicit constructors never check the key: an empty key is a
// valid (if useless) value that the remote service will reject.
var ErrAPIKeyNotSet = errors.New("configuration: " + EnvAPIKey + " environment variable is not set")

// queryPair is one name=value entry in a query string. Optional pairs carry
// set=false and are omitted from the encoded output entirely.
type queryPair struct {
	name  string
	value string
	set   bool
}

func pair(name, value string) queryPair {
	return queryPair{name: name, value: value, set: true}
}

func optPair(name, value string) queryPair {
	return queryPair{name: name, value: value, set: value != ""}
}

// encodeQuery assembles a query string from ordered pairs, preserving the
// declared order and percent-encoding every value. Unset pairs are skipped;
// the result has no leading "?" and no trailing "&".
func encodeQuery(pairs []queryPair) string {
	var b strings.Builder
	for _, p := range pairs {
		if !p.set {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.name)
		b.WriteByte('=')
		b.WriteString(escapeValue(p.value))
	}
	return b.String()
}

// escapeValue percent-encodes a free-text query value. Spaces are encoded as
// %20 rather than "+" to match the encoding the remote service documents.
func escapeValue(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// SearchParams configures one request to the /search endpoint.
//
// Query and Location are plain unescaped text; URL percent-encodes them.
type SearchParams struct {
	APIKey   string
	Location string
	Query    string
}

// NewSearchParams builds search parameters with an explicit API key.
func NewSearchParams(apiKey, location, query string) SearchParams {
	return SearchParams{APIKey: apiKey, Location: location, Query: query}
}

// SearchParamsFromEnv builds search parameters using the API key from
// SCALE_SERP_KEY. Returns ErrAPIKeyNotSet when the variable is unset.
func SearchParamsFromEnv(location, query string) (SearchParams, error) {
	key, ok := os.LookupEnv(EnvAPIKey)
	if !ok {
		return SearchParams{}, ErrAPIKeyNotSet
	}
	return NewSearchParams(key, location, query), nil
}

// NewYorkSearchFromEnv is SearchParamsFromEnv with the location fixed to
// New York City.
func NewYorkSearchFromEnv(query string) (SearchParams, error) {
	return SearchParamsFromEnv(LocationNewYork, query)
}

// UnitedStatesSearchFromEnv is SearchParamsFromEnv with the location fixed to
// the United States.
func UnitedStatesSearchFromEnv(query string) (SearchParams, error) {
	return SearchParamsFromEnv(LocationUnitedStates, query)
}

// QueryString encodes the parameters in their fixed order: api_key, location, q.
func (p SearchParams) QueryString() string {
	return encodeQuery([]queryPair{
		pair("api_key", p.APIKey),
		pair("location", p.Location),
		pair("q", p.Query),
	})
}

// URL builds the full request URL against the given base endpoint.
// An empty baseURL means DefaultBaseURL.
func (p SearchParams) URL(baseURL string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return fmt.Sprintf("%s/search?%s", baseURL, p.QueryString())
}

// LocationParams configures one request to the /locations endpoint.
//
// Type and CountryCode are optional refinement filters; when left empty they
// are omitted from the URL entirely, never sent as empty values.
type LocationParams struct {
	APIKey      string
	Query       string
	Type        string
	CountryCode string
}

// NewLocationParams builds location parameters with an explicit API key and
// no refinement filters.
func NewLocationParams(apiKey, query string) LocationParams {
	return LocationParams{APIKey: apiKey, Query: query}
}

// LocationParamsFromEnv builds location parameters using the API key from
// SCALE_SERP_KEY. Returns ErrAPIKeyNotSet when the variable is unset.
func LocationParamsFromEnv(query string) (LocationParams, error) {
	key, ok := os.LookupEnv(EnvAPIKey)
	if !ok {
		return LocationParams{}, ErrAPIKeyNotSet
	}
	return NewLocationParams(key, query), nil
}

// QueryString encodes the parameters in their fixed order:
// api_key, q, [type], [country_code].
func (p LocationParams) QueryString() string {
	return encodeQuery([]queryPair{
		pair("api_key", p.APIKey),
		pair("q", p.Query),
		optPair("type", p.Type),
		optPair("country_code", p.CountryCode),
	})
}

// URL builds the full request URL against the given base endpoint.
func (p LocationParams) URL(baseURL string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return fmt.Sprintf("%s/locations?%s", baseURL, p.QueryString())
}
