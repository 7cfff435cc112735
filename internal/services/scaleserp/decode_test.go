package scaleserp

import (
	"errors"
	"regexp"
	"strings"
	"testing"
)

var danglingComma = regexp.MustCompile(`,(\s*[}\]])`)

// fullSearchBody has every optional section present.
const fullSearchBody = `{
	"request_info": {
		"success": true,
		"credits_used": 125,
		"credits_used_this_request": 1,
		"credits_remaining": 875,
		"credits_reset_at": "2021-07-31T01:00:37.000Z"
	},
	"search_metadata": {
		"created_at": "2021-07-14T01:00:37.000Z",
		"processed_at": "2021-07-14T01:00:39.000Z",
		"total_time_taken": 1.92,
		"engine_url": "https://www.google.com/search?q=external+ssd",
		"html_url": "https://api.scaleserp.com/search?api_key=K&output=html",
		"json_url": "https://api.scaleserp.com/search?api_key=K&output=json",
		"location_auto_message": "location used: New York,New York,United States"
	},
	"search_parameters": {
		"location": "New York,New York,United States",
		"q": "external ssd"
	},
	"search_information": {
		"original_query_yields_zero_results": false,
		"total_results": 158000000,
		"time_taken_displayed": 0.72,
		"query_displayed": "external ssd",
		"detected_location": "New York"
	},
	"ads": [
		{
			"position": 1,
			"block_position": "top",
			"title": "Portable SSD - Official Site",
			"link": "https://ad.example.com/ssd",
			"domain": "ad.example.com",
			"displayed_link": "www.ad.example.com",
			"description": "Fast portable storage.",
			"sitelinks": [
				{"title": "Deals", "link": "https://ad.example.com/deals"}
			]
		},
		{
			"position": 2,
			"block_position": "top",
			"title": "SSD Sale",
			"link": "https://other.example.com",
			"domain": "other.example.com",
			"displayed_link": "www.other.example.com",
			"description": "Discounted drives."
		}
	],
	"top_stories": [
		{
			"link": "https://news.example.com/ssd-review",
			"title": "The best external SSDs of the year",
			"visible_initially": true,
			"source": "Example News",
			"date": "2 days ago",
			"date_utc": "2021-07-12T00:00:00.000Z",
			"block_position": 3
		}
	],
	"top_products": [
		{
			"title": "Example T7 1TB",
			"price": "$109.99",
			"rating": 4.8,
			"sources": [
				{"name": "ShopA", "link": "https://shopa.example.com", "title": "Example T7"}
			],
			"specifications": [
				{"name": "Capacity", "value": "1 TB"}
			],
			"block_position": 2
		}
	],
	"related_searches": [
		{"query": "external ssd 2tb", "link": "https://www.google.com/search?q=external+ssd+2tb"}
	],
	"related_questions": [
		{
			"question": "Are external SSDs worth it?",
			"answer": "Yes, for speed and durability.",
			"source": {
				"link": "https://faq.example.com",
				"displayed_link": "faq.example.com",
				"title": "SSD FAQ"
			},
			"block_position": 5
		}
	],
	"organic_results": [
		{
			"position": 1,
			"title": "Best External SSDs",
			"link": "https://reviews.example.com/ssd",
			"domain": "reviews.example.com",
			"displayed_link": "reviews.example.com › ssd",
			"snippet": "Our picks for portable storage.",
			"prerender": false,
			"snippet_matched": ["external ssd"],
			"block_position": 1
		},
		{
			"position": 2,
			"title": "External SSD Buying Guide",
			"link": "https://guide.example.com",
			"domain": "guide.example.com",
			"displayed_link": "guide.example.com",
			"snippet": "What to look for.",
			"prerender": true,
			"block_position": 4
		}
	]
}`

// minimalSearchBody has every optional section absent and the required
// collections present but empty.
const minimalSearchBody = `{
	"request_info": {
		"success": true,
		"credits_used": 1,
		"credits_used_this_request": 1,
		"credits_remaining": 999,
		"credits_reset_at": "2021-07-31T01:00:37.000Z"
	},
	"search_metadata": {
		"created_at": "2021-07-14T01:00:37.000Z",
		"processed_at": "2021-07-14T01:00:39.000Z",
		"total_time_taken": 0.4,
		"engine_url": "https://www.google.com/search?q=zwitterionic+surfactant",
		"html_url": "https://api.scaleserp.com/search?output=html",
		"json_url": "https://api.scaleserp.com/search?output=json"
	},
	"search_parameters": {
		"location": "United States",
		"q": "zwitterionic surfactant"
	},
	"search_information": {
		"original_query_yields_zero_results": true,
		"total_results": 0,
		"time_taken_displayed": 0.2,
		"query_displayed": "zwitterionic surfactant"
	},
	"related_searches": [],
	"organic_results": []
}`

func TestDecodeSearchResponseFull(t *testing.T) {
	resp, err := DecodeSearchResponse([]byte(fullSearchBody))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !resp.RequestInfo.Success {
		t.Error("Expected request_info.success to be true")
	}
	if resp.RequestInfo.CreditsRemaining != 875 {
		t.Errorf("Expected 875 credits remaining, got %d", resp.RequestInfo.CreditsRemaining)
	}
	if resp.SearchParameters.Query != "external ssd" {
		t.Errorf("Expected query 'external ssd', got %q", resp.SearchParameters.Query)
	}
	if resp.SearchMetadata.LocationAutoMessage == nil {
		t.Error("Expected location_auto_message to be present")
	}
	if resp.SearchInformation.DetectedLocation == nil || *resp.SearchInformation.DetectedLocation != "New York" {
		t.Error("Expected detected_location 'New York'")
	}

	if len(resp.Ads) != 2 {
		t.Fatalf("Expected 2 ads, got %d", len(resp.Ads))
	}
	if len(resp.Ads[0].Sitelinks) != 1 {
		t.Errorf("Expected 1 sitelink on first ad, got %d", len(resp.Ads[0].Sitelinks))
	}
	if resp.Ads[1].Sitelinks != nil {
		t.Error("Expected absent sitelinks on second ad to decode as nil")
	}

	if len(resp.TopStories) != 1 || resp.TopStories[0].Source != "Example News" {
		t.Error("Expected decoded top story")
	}
	if len(resp.TopProducts) != 1 || resp.TopProducts[0].Rating != 4.8 {
		t.Error("Expected decoded top product")
	}
	if len(resp.TopProducts[0].Sources) != 1 || resp.TopProducts[0].Sources[0].Name != "ShopA" {
		t.Error("Expected decoded top product source")
	}
	if len(resp.RelatedQuestions) != 1 || resp.RelatedQuestions[0].Source.Title != "SSD FAQ" {
		t.Error("Expected decoded related question with source")
	}

	if len(resp.OrganicResults) != 2 {
		t.Fatalf("Expected 2 organic results, got %d", len(resp.OrganicResults))
	}
	if got := resp.OrganicResults[0].SnippetMatched; len(got) != 1 || got[0] != "external ssd" {
		t.Errorf("Expected snippet_matched on first result, got %v", got)
	}
	if resp.OrganicResults[1].SnippetMatched != nil {
		t.Error("Expected absent snippet_matched to decode as nil")
	}
}

func TestDecodeSearchResponseMinimal(t *testing.T) {
	resp, err := DecodeSearchResponse([]byte(minimalSearchBody))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Optional sections absent: nil, not empty.
	if resp.Ads != nil {
		t.Error("Expected nil ads for absent section")
	}
	if resp.TopStories != nil {
		t.Error("Expected nil top_stories for absent section")
	}
	if resp.TopProducts != nil {
		t.Error("Expected nil top_products for absent section")
	}
	if resp.RelatedQuestions != nil {
		t.Error("Expected nil related_questions for absent section")
	}

	// Required collections present and empty: non-nil.
	if resp.RelatedSearches == nil || len(resp.RelatedSearches) != 0 {
		t.Errorf("Expected empty non-nil related_searches, got %v", resp.RelatedSearches)
	}
	if resp.OrganicResults == nil || len(resp.OrganicResults) != 0 {
		t.Errorf("Expected empty non-nil organic_results, got %v", resp.OrganicResults)
	}

	if resp.SearchMetadata.LocationAutoMessage != nil {
		t.Error("Expected nil location_auto_message when absent")
	}
	if !resp.SearchInformation.OriginalQueryYieldsZeroResults {
		t.Error("Expected original_query_yields_zero_results to be true")
	}
}

func TestDecodeSearchResponseNullOptionalSections(t *testing.T) {
	body := strings.Replace(minimalSearchBody, `"related_searches": []`,
		`"ads": null, "top_stories": null, "related_questions": null, "related_searches": []`, 1)

	resp, err := DecodeSearchResponse([]byte(body))
	if err != nil {
		t.Fatalf("Expected explicit null optional sections to decode, got %v", err)
	}
	if resp.Ads != nil || resp.TopStories != nil || resp.RelatedQuestions != nil {
		t.Error("Expected null optional sections to decode as nil")
	}
}

func TestDecodeSearchResponseUnknownFieldsIgnored(t *testing.T) {
	body := strings.Replace(minimalSearchBody, `"related_searches": []`,
		`"pagination": {"next": "..."}, "inline_images": [], "related_searches": []`, 1)

	if _, err := DecodeSearchResponse([]byte(body)); err != nil {
		t.Errorf("Expected unknown fields to be ignored, got %v", err)
	}
}

func TestDecodeSearchResponseMissingRequired(t *testing.T) {
	tests := []struct {
		name     string
		remove   string
		wantPath string
	}{
		{
			name:     "missing related_searches",
			remove:   `"related_searches": [],`,
			wantPath: "related_searches",
		},
		{
			name:     "missing organic_results",
			remove:   `"organic_results": []`,
			wantPath: "organic_results",
		},
		{
			name:     "missing request_info.success",
			remove:   `"success": true,`,
			wantPath: "request_info.success",
		},
		{
			name:     "missing search_parameters.q",
			remove:   `"q": "zwitterionic surfactant"`,
			wantPath: "search_parameters.q",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.Replace(minimalSearchBody, tt.remove, "", 1)
			// Drop any dangling comma left by the removal.
			body = danglingComma.ReplaceAllString(body, "$1")

			_, err := DecodeSearchResponse([]byte(body))
			if err == nil {
				t.Fatal("Expected a schema violation, got nil error")
			}

			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("Expected *SchemaError, got %T: %v", err, err)
			}
			if schemaErr.Path != tt.wantPath {
				t.Errorf("Expected path %q, got %q", tt.wantPath, schemaErr.Path)
			}
			if schemaErr.Endpoint != "search" {
				t.Errorf("Expected endpoint 'search', got %q", schemaErr.Endpoint)
			}
		})
	}
}

func TestDecodeSearchResponseWrongType(t *testing.T) {
	body := strings.Replace(minimalSearchBody, `"success": true`, `"success": "yes"`, 1)

	_, err := DecodeSearchResponse([]byte(body))
	if err == nil {
		t.Fatal("Expected a schema violation for wrong type, got nil error")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *SchemaError, got %T: %v", err, err)
	}
	if !strings.Contains(schemaErr.Path, "success") {
		t.Errorf("Expected path pointing at success, got %q", schemaErr.Path)
	}
}

func TestDecodeSearchResponseMalformedJSON(t *testing.T) {
	_, err := DecodeSearchResponse([]byte(`{"request_info": `))
	if err == nil {
		t.Fatal("Expected an error for truncated JSON")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *SchemaError, got %T", err)
	}
}

// No partial results: a violation deep inside one section fails the whole decode.
func TestDecodeSearchResponseAllOrNothing(t *testing.T) {
	body := strings.Replace(fullSearchBody, `"title": "Best External SSDs",`, "", 1)

	resp, err := DecodeSearchResponse([]byte(body))
	if err == nil {
		t.Fatal("Expected a schema violation, got nil error")
	}
	if resp != nil {
		t.Error("Expected nil response on decode failure")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *SchemaError, got %T", err)
	}
	if schemaErr.Path != "organic_results[0].title" {
		t.Errorf("Expected indexed path, got %q", schemaErr.Path)
	}
}

const locationsBody = `{
	"request_info": {"success": true},
	"locations_total": 2,
	"locations_total_current_page": 2,
	"page": 1,
	"limit": 10,
	"locations": [
		{
			"id": 1014044,
			"name": "Chicago",
			"type": "City",
			"full_name": "Chicago,Illinois,United States",
			"parent_id": 21147,
			"country_code": "US",
			"reach": 6780000,
			"gps_coordinates": {"latitude": 41.8781136, "longitude": -87.6297982}
		},
		{
			"id": 1014045,
			"name": "Chicago Heights",
			"type": "City",
			"full_name": "Chicago Heights,Illinois,United States",
			"parent_id": 21147,
			"country_code": "US",
			"reach": 40000,
			"gps_coordinates": {"latitude": 41.5061412, "longitude": -87.6355002}
		}
	]
}`

func TestDecodeLocationsResponse(t *testing.T) {
	resp, err := DecodeLocationsResponse([]byte(locationsBody))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !resp.RequestInfo.Success {
		t.Error("Expected request_info.success to be true")
	}
	if resp.LocationsTotal != 2 || resp.Page != 1 || resp.Limit != 10 {
		t.Error("Expected paging fields to decode")
	}
	if len(resp.Locations) != 2 {
		t.Fatalf("Expected 2 locations, got %d", len(resp.Locations))
	}

	chicago := resp.Locations[0]
	if chicago.FullName != "Chicago,Illinois,United States" {
		t.Errorf("Expected full name, got %q", chicago.FullName)
	}
	if chicago.GPSCoordinates.Latitude != 41.8781136 {
		t.Errorf("Expected latitude, got %f", chicago.GPSCoordinates.Latitude)
	}
}

func TestDecodeLocationsResponseMissingRequired(t *testing.T) {
	tests := []struct {
		name     string
		remove   string
		wantPath string
	}{
		{"missing success", `"success": true`, "request_info.success"},
		{"missing limit", `"limit": 10,`, "limit"},
		{"missing location name", `"name": "Chicago Heights",`, "locations[1].name"},
		{"missing gps latitude", `"latitude": 41.8781136, `, "locations[0].gps_coordinates.latitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.Replace(locationsBody, tt.remove, "", 1)

			_, err := DecodeLocationsResponse([]byte(body))
			if err == nil {
				t.Fatal("Expected a schema violation, got nil error")
			}

			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("Expected *SchemaError, got %T: %v", err, err)
			}
			if schemaErr.Path != tt.wantPath {
				t.Errorf("Expected path %q, got %q", tt.wantPath, schemaErr.Path)
			}
			if schemaErr.Endpoint != "locations" {
				t.Errorf("Expected endpoint 'locations', got %q", schemaErr.Endpoint)
			}
		})
	}
}
