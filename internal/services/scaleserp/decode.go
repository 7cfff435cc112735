package scaleserp

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SchemaError reports the first structural mismatch between a response body
// and the documented schema, with a dotted path to the offending field.
// Absence of an optional section is never a SchemaError; it decodes to nil.
type SchemaError struct {
	Endpoint string // "search" or "locations"
	Path     string // e.g. "request_info.success" or "organic_results[3].title"
	Reason   string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s response schema violation: %s", e.Endpoint, e.Reason)
	}
	return fmt.Sprintf("%s response schema violation at %s: %s", e.Endpoint, e.Path, e.Reason)
}

// check collects the first schema violation seen during a decode walk.
type check struct {
	err *SchemaError
}

func (c *check) fail(path, reason string) {
	if c.err == nil {
		c.err = &SchemaError{Path: path, Reason: reason}
	}
}

// field dereferences a required wire field, recording a violation when the
// key was missing or null.
func field[T any](c *check, v *T, path string) T {
	if v == nil {
		var zero T
		c.fail(path, "missing required field")
		return zero
	}
	return *v
}

// DecodeSearchResponse decodes a raw /search JSON body into a SearchResponse.
// Decoding is all-or-nothing: any missing required field, wrong type, or
// malformed nested structure yields a *SchemaError and no partial result.
// Unknown extra fields are ignored.
func DecodeSearchResponse(data []byte) (*SearchResponse, error) {
	var w searchResponseWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, wireError("search", err)
	}

	c := &check{}
	resp := w.model(c)
	if c.err != nil {
		c.err.Endpoint = "search"
		return nil, c.err
	}
	return resp, nil
}

// DecodeLocationsResponse decodes a raw /locations JSON body. Every field in
// this schema is required; any absence is a *SchemaError.
func DecodeLocationsResponse(data []byte) (*LocationsResponse, error) {
	var w locationsResponseWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, wireError("locations", err)
	}

	c := &check{}
	resp := w.model(c)
	if c.err != nil {
		c.err.Endpoint = "locations"
		return nil, c.err
	}
	return resp, nil
}

// wireError converts an encoding/json failure into a SchemaError, preserving
// the field path when the standard library reports one.
func wireError(endpoint string, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &SchemaError{
			Endpoint: endpoint,
			Path:     typeErr.Field,
			Reason:   fmt.Sprintf("expected %s, got JSON %s", typeErr.Type, typeErr.Value),
		}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &SchemaError{
			Endpoint: endpoint,
			Reason:   fmt.Sprintf("malformed JSON at offset %d: %v", syntaxErr.Offset, syntaxErr),
		}
	}

	return &SchemaError{Endpoint: endpoint, Reason: err.Error()}
}

// Wire types mirror the JSON schema with pointers on every required field so
// that a missing or null key is observable after unmarshaling. Optional
// sections stay plain slices: nil means the key was absent, which is a valid
// decoded state, not a violation.

type searchResponseWire struct {
	RequestInfo       *requestInfoWire       `json:"request_info"`
	SearchMetadata    *searchMetadataWire    `json:"search_metadata"`
	SearchParameters  *searchParametersWire  `json:"search_parameters"`
	SearchInformation *searchInformationWire `json:"search_information"`
	Ads               []adWire               `json:"ads"`
	TopStories        []topStoryWire         `json:"top_stories"`
	TopProducts       []topProductWire       `json:"top_products"`
	RelatedSearches   []relatedSearchWire    `json:"related_searches"`
	RelatedQuestions  []relatedQuestionWire  `json:"related_questions"`
	OrganicResults    []organicResultWire    `json:"organic_results"`
}

func (w *searchResponseWire) model(c *check) *SearchResponse {
	resp := &SearchResponse{}

	if w.RequestInfo == nil {
		c.fail("request_info", "missing required field")
	} else {
		resp.RequestInfo = w.RequestInfo.model(c, "request_info")
	}
	if w.SearchMetadata == nil {
		c.fail("search_metadata", "missing required field")
	} else {
		resp.SearchMetadata = w.SearchMetadata.model(c, "search_metadata")
	}
	if w.SearchParameters == nil {
		c.fail("search_parameters", "missing required field")
	} else {
		resp.SearchParameters = w.SearchParameters.model(c, "search_parameters")
	}
	if w.SearchInformation == nil {
		c.fail("search_information", "missing required field")
	} else {
		resp.SearchInformation = w.SearchInformation.model(c, "search_information")
	}

	// Optional sections: nil stays nil.
	if w.Ads != nil {
		resp.Ads = make([]Ad, 0, len(w.Ads))
		for i, a := range w.Ads {
			resp.Ads = append(resp.Ads, a.model(c, fmt.Sprintf("ads[%d]", i)))
		}
	}
	if w.TopStories != nil {
		resp.TopStories = make([]TopStory, 0, len(w.TopStories))
		for i, s := range w.TopStories {
			resp.TopStories = append(resp.TopStories, s.model(c, fmt.Sprintf("top_stories[%d]", i)))
		}
	}
	if w.TopProducts != nil {
		resp.TopProducts = make([]TopProduct, 0, len(w.TopProducts))
		for i, p := range w.TopProducts {
			resp.TopProducts = append(resp.TopProducts, p.model(c, fmt.Sprintf("top_products[%d]", i)))
		}
	}
	if w.RelatedQuestions != nil {
		resp.RelatedQuestions = make([]RelatedQuestion, 0, len(w.RelatedQuestions))
		for i, q := range w.RelatedQuestions {
			resp.RelatedQuestions = append(resp.RelatedQuestions, q.model(c, fmt.Sprintf("related_questions[%d]", i)))
		}
	}

	// Required collections: may be empty, never missing.
	if w.RelatedSearches == nil {
		c.fail("related_searches", "missing required field")
	} else {
		resp.RelatedSearches = make([]RelatedSearch, 0, len(w.RelatedSearches))
		for i, s := range w.RelatedSearches {
			resp.RelatedSearches = append(resp.RelatedSearches, s.model(c, fmt.Sprintf("related_searches[%d]", i)))
		}
	}
	if w.OrganicResults == nil {
		c.fail("organic_results", "missing required field")
	} else {
		resp.OrganicResults = make([]OrganicResult, 0, len(w.OrganicResults))
		for i, r := range w.OrganicResults {
			resp.OrganicResults = append(resp.OrganicResults, r.model(c, fmt.Sprintf("organic_results[%d]", i)))
		}
	}

	return resp
}

type requestInfoWire struct {
	Success                *bool   `json:"success"`
	CreditsUsed            *uint   `json:"credits_used"`
	CreditsUsedThisRequest *uint   `json:"credits_used_this_request"`
	CreditsRemaining       *uint   `json:"credits_remaining"`
	CreditsResetAt         *string `json:"credits_reset_at"`
}

func (w *requestInfoWire) model(c *check, p string) RequestInfo {
	return RequestInfo{
		Success:                field(c, w.Success, p+".success"),
		CreditsUsed:            field(c, w.CreditsUsed, p+".credits_used"),
		CreditsUsedThisRequest: field(c, w.CreditsUsedThisRequest, p+".credits_used_this_request"),
		CreditsRemaining:       field(c, w.CreditsRemaining, p+".credits_remaining"),
		CreditsResetAt:         field(c, w.CreditsResetAt, p+".credits_reset_at"),
	}
}

type searchMetadataWire struct {
	CreatedAt           *string  `json:"created_at"`
	ProcessedAt         *string  `json:"processed_at"`
	TotalTimeTaken      *float64 `json:"total_time_taken"`
	EngineURL           *string  `json:"engine_url"`
	HTMLURL             *string  `json:"html_url"`
	JSONURL             *string  `json:"json_url"`
	LocationAutoMessage *string  `json:"location_auto_message"`
}

func (w *searchMetadataWire) model(c *check, p string) SearchMetadata {
	return SearchMetadata{
		CreatedAt:           field(c, w.CreatedAt, p+".created_at"),
		ProcessedAt:         field(c, w.ProcessedAt, p+".processed_at"),
		TotalTimeTaken:      field(c, w.TotalTimeTaken, p+".total_time_taken"),
		EngineURL:           field(c, w.EngineURL, p+".engine_url"),
		HTMLURL:             field(c, w.HTMLURL, p+".html_url"),
		JSONURL:             field(c, w.JSONURL, p+".json_url"),
		LocationAutoMessage: w.LocationAutoMessage, // optional
	}
}

type searchParametersWire struct {
	Location *string `json:"location"`
	Query    *string `json:"q"`
}

func (w *searchParametersWire) model(c *check, p string) SearchParameters {
	return SearchParameters{
		Location: field(c, w.Location, p+".location"),
		Query:    field(c, w.Query, p+".q"),
	}
}

type searchInformationWire struct {
	OriginalQueryYieldsZeroResults *bool    `json:"original_query_yields_zero_results"`
	TotalResults                   *uint    `json:"total_results"`
	TimeTakenDisplayed             *float64 `json:"time_taken_displayed"`
	QueryDisplayed                 *string  `json:"query_displayed"`
	DetectedLocation               *string  `json:"detected_location"`
}

func (w *searchInformationWire) model(c *check, p string) SearchInformation {
	return SearchInformation{
		OriginalQueryYieldsZeroResults: field(c, w.OriginalQueryYieldsZeroResults, p+".original_query_yields_zero_results"),
		TotalResults:                   field(c, w.TotalResults, p+".total_results"),
		TimeTakenDisplayed:             field(c, w.TimeTakenDisplayed, p+".time_taken_displayed"),
		QueryDisplayed:                 field(c, w.QueryDisplayed, p+".query_displayed"),
		DetectedLocation:               w.DetectedLocation, // optional
	}
}

type adWire struct {
	Position      *uint            `json:"position"`
	BlockPosition *string          `json:"block_position"`
	Title         *string          `json:"title"`
	Link          *string          `json:"link"`
	Domain        *string          `json:"domain"`
	DisplayedLink *string          `json:"displayed_link"`
	Description   *string          `json:"description"`
	Sitelinks     []adSitelinkWire `json:"sitelinks"`
}

func (w adWire) model(c *check, p string) Ad {
	ad := Ad{
		Position:      field(c, w.Position, p+".position"),
		BlockPosition: field(c, w.BlockPosition, p+".block_position"),
		Title:         field(c, w.Title, p+".title"),
		Link:          field(c, w.Link, p+".link"),
		Domain:        field(c, w.Domain, p+".domain"),
		DisplayedLink: field(c, w.DisplayedLink, p+".displayed_link"),
		Description:   field(c, w.Description, p+".description"),
	}
	if w.Sitelinks != nil {
		ad.Sitelinks = make([]AdSitelink, 0, len(w.Sitelinks))
		for i, s := range w.Sitelinks {
			ad.Sitelinks = append(ad.Sitelinks, s.model(c, fmt.Sprintf("%s.sitelinks[%d]", p, i)))
		}
	}
	return ad
}

type adSitelinkWire struct {
	Title *string `json:"title"`
	Link  *string `json:"link"`
}

func (w adSitelinkWire) model(c *check, p string) AdSitelink {
	return AdSitelink{
		Title: field(c, w.Title, p+".title"),
		Link:  field(c, w.Link, p+".link"),
	}
}

type organicResultWire struct {
	Position       *uint    `json:"position"`
	Title          *string  `json:"title"`
	Link           *string  `json:"link"`
	Domain         *string  `json:"domain"`
	DisplayedLink  *string  `json:"displayed_link"`
	Snippet        *string  `json:"snippet"`
	Prerender      *bool    `json:"prerender"`
	SnippetMatched []string `json:"snippet_matched"`
	BlockPosition  *uint    `json:"block_position"`
}

func (w organicResultWire) model(c *check, p string) OrganicResult {
	return OrganicResult{
		Position:       field(c, w.Position, p+".position"),
		Title:          field(c, w.Title, p+".title"),
		Link:           field(c, w.Link, p+".link"),
		Domain:         field(c, w.Domain, p+".domain"),
		DisplayedLink:  field(c, w.DisplayedLink, p+".displayed_link"),
		Snippet:        field(c, w.Snippet, p+".snippet"),
		Prerender:      field(c, w.Prerender, p+".prerender"),
		SnippetMatched: w.SnippetMatched, // optional, nil when absent
		BlockPosition:  field(c, w.BlockPosition, p+".block_position"),
	}
}

type topStoryWire struct {
	Link             *string `json:"link"`
	Title            *string `json:"title"`
	VisibleInitially *bool   `json:"visible_initially"`
	Source           *string `json:"source"`
	Date             *string `json:"date"`
	DateUTC          *string `json:"date_utc"`
	BlockPosition    *uint   `json:"block_position"`
}

func (w topStoryWire) model(c *check, p string) TopStory {
	return TopStory{
		Link:             field(c, w.Link, p+".link"),
		Title:            field(c, w.Title, p+".title"),
		VisibleInitially: field(c, w.VisibleInitially, p+".visible_initially"),
		Source:           field(c, w.Source, p+".source"),
		Date:             field(c, w.Date, p+".date"),
		DateUTC:          field(c, w.DateUTC, p+".date_utc"),
		BlockPosition:    field(c, w.BlockPosition, p+".block_position"),
	}
}

type topProductWire struct {
	Title          *string                       `json:"title"`
	Price          *string                       `json:"price"`
	Rating         *float64                      `json:"rating"`
	Sources        []topProductSourceWire        `json:"sources"`
	Specifications []topProductSpecificationWire `json:"specifications"`
	BlockPosition  *uint                         `json:"block_position"`
}

func (w topProductWire) model(c *check, p string) TopProduct {
	tp := TopProduct{
		Title:         field(c, w.Title, p+".title"),
		Price:         field(c, w.Price, p+".price"),
		Rating:        field(c, w.Rating, p+".rating"),
		BlockPosition: field(c, w.BlockPosition, p+".block_position"),
	}
	if w.Sources == nil {
		c.fail(p+".sources", "missing required field")
	} else {
		tp.Sources = make([]TopProductSource, 0, len(w.Sources))
		for i, s := range w.Sources {
			tp.Sources = append(tp.Sources, s.model(c, fmt.Sprintf("%s.sources[%d]", p, i)))
		}
	}
	if w.Specifications == nil {
		c.fail(p+".specifications", "missing required field")
	} else {
		tp.Specifications = make([]TopProductSpecification, 0, len(w.Specifications))
		for i, s := range w.Specifications {
			tp.Specifications = append(tp.Specifications, s.model(c, fmt.Sprintf("%s.specifications[%d]", p, i)))
		}
	}
	return tp
}

type topProductSourceWire struct {
	Name  *string `json:"name"`
	Link  *string `json:"link"`
	Title *string `json:"title"`
}

func (w topProductSourceWire) model(c *check, p string) TopProductSource {
	return TopProductSource{
		Name:  field(c, w.Name, p+".name"),
		Link:  field(c, w.Link, p+".link"),
		Title: field(c, w.Title, p+".title"),
	}
}

type topProductSpecificationWire struct {
	Name  *string `json:"name"`
	Value *string `json:"value"`
}

func (w topProductSpecificationWire) model(c *check, p string) TopProductSpecification {
	return TopProductSpecification{
		Name:  field(c, w.Name, p+".name"),
		Value: field(c, w.Value, p+".value"),
	}
}

type relatedQuestionWire struct {
	Question      *string                    `json:"question"`
	Answer        *string                    `json:"answer"`
	Source        *relatedQuestionSourceWire `json:"source"`
	BlockPosition *uint                      `json:"block_position"`
}

func (w relatedQuestionWire) model(c *check, p string) RelatedQuestion {
	q := RelatedQuestion{
		Question:      field(c, w.Question, p+".question"),
		Answer:        field(c, w.Answer, p+".answer"),
		BlockPosition: field(c, w.BlockPosition, p+".block_position"),
	}
	if w.Source == nil {
		c.fail(p+".source", "missing required field")
	} else {
		q.Source = w.Source.model(c, p+".source")
	}
	return q
}

type relatedQuestionSourceWire struct {
	Link          *string `json:"link"`
	DisplayedLink *string `json:"displayed_link"`
	Title         *string `json:"title"`
}

func (w *relatedQuestionSourceWire) model(c *check, p string) RelatedQuestionSource {
	return RelatedQuestionSource{
		Link:          field(c, w.Link, p+".link"),
		DisplayedLink: field(c, w.DisplayedLink, p+".displayed_link"),
		Title:         field(c, w.Title, p+".title"),
	}
}

type relatedSearchWire struct {
	Query *string `json:"query"`
	Link  *string `json:"link"`
}

func (w relatedSearchWire) model(c *check, p string) RelatedSearch {
	return RelatedSearch{
		Query: field(c, w.Query, p+".query"),
		Link:  field(c, w.Link, p+".link"),
	}
}

type locationsResponseWire struct {
	RequestInfo               *locationsRequestInfoWire `json:"request_info"`
	LocationsTotal            *int                      `json:"locations_total"`
	LocationsTotalCurrentPage *int                      `json:"locations_total_current_page"`
	Page                      *int                      `json:"page"`
	Limit                     *int                      `json:"limit"`
	Locations                 []locationWire            `json:"locations"`
}

func (w *locationsResponseWire) model(c *check) *LocationsResponse {
	resp := &LocationsResponse{
		LocationsTotal:            field(c, w.LocationsTotal, "locations_total"),
		LocationsTotalCurrentPage: field(c, w.LocationsTotalCurrentPage, "locations_total_current_page"),
		Page:                      field(c, w.Page, "page"),
		Limit:                     field(c, w.Limit, "limit"),
	}
	if w.RequestInfo == nil {
		c.fail("request_info", "missing required field")
	} else {
		resp.RequestInfo = LocationsRequestInfo{
			Success: field(c, w.RequestInfo.Success, "request_info.success"),
		}
	}
	if w.Locations == nil {
		c.fail("locations", "missing required field")
	} else {
		resp.Locations = make([]Location, 0, len(w.Locations))
		for i, l := range w.Locations {
			resp.Locations = append(resp.Locations, l.model(c, fmt.Sprintf("locations[%d]", i)))
		}
	}
	return resp
}

type locationsRequestInfoWire struct {
	Success *bool `json:"success"`
}

type locationWire struct {
	ID             *int                `json:"id"`
	Name           *string             `json:"name"`
	Type           *string             `json:"type"`
	FullName       *string             `json:"full_name"`
	ParentID       *int                `json:"parent_id"`
	CountryCode    *string             `json:"country_code"`
	Reach          *uint               `json:"reach"`
	GPSCoordinates *gpsCoordinatesWire `json:"gps_coordinates"`
}

func (w locationWire) model(c *check, p string) Location {
	loc := Location{
		ID:          field(c, w.ID, p+".id"),
		Name:        field(c, w.Name, p+".name"),
		Type:        field(c, w.Type, p+".type"),
		FullName:    field(c, w.FullName, p+".full_name"),
		ParentID:    field(c, w.ParentID, p+".parent_id"),
		CountryCode: field(c, w.CountryCode, p+".country_code"),
		Reach:       field(c, w.Reach, p+".reach"),
	}
	if w.GPSCoordinates == nil {
		c.fail(p+".gps_coordinates", "missing required field")
	} else {
		loc.GPSCoordinates = GPSCoordinates{
			Latitude:  field(c, w.GPSCoordinates.Latitude, p+".gps_coordinates.latitude"),
			Longitude: field(c, w.GPSCoordinates.Longitude, p+".gps_coordinates.longitude"),
		}
	}
	return loc
}

type gpsCoordinatesWire struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}
