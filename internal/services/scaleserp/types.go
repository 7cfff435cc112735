package scaleserp

// SearchResponse is the decoded body of a /search response.
//
// The remote service omits entire sections depending on the query: Ads,
// TopStories, TopProducts and RelatedQuestions are nil when the section was
// absent from the payload, which is meaningful data ("this query triggered no
// ads") and distinct from a present-but-empty section. RelatedSearches and
// OrganicResults are always non-nil after a successful decode, possibly empty.
type SearchResponse struct {
	RequestInfo       RequestInfo       `json:"request_info"`
	SearchMetadata    SearchMetadata    `json:"search_metadata"`
	SearchParameters  SearchParameters  `json:"search_parameters"`
	SearchInformation SearchInformation `json:"search_information"`
	Ads               []Ad              `json:"ads,omitempty"`
	TopStories        []TopStory        `json:"top_stories,omitempty"`
	TopProducts       []TopProduct      `json:"top_products,omitempty"`
	RelatedSearches   []RelatedSearch   `json:"related_searches"`
	RelatedQuestions  []RelatedQuestion `json:"related_questions,omitempty"`
	OrganicResults    []OrganicResult   `json:"organic_results"`
}

// RequestInfo carries the credit accounting the service attaches to every
// search response.
type RequestInfo struct {
	Success                bool   `json:"success"`
	CreditsUsed            uint   `json:"credits_used"`
	CreditsUsedThisRequest uint   `json:"credits_used_this_request"`
	CreditsRemaining       uint   `json:"credits_remaining"`
	CreditsResetAt         string `json:"credits_reset_at"` // e.g. "2021-07-31T01:00:37.000Z"
}

type SearchMetadata struct {
	CreatedAt           string  `json:"created_at"`
	ProcessedAt         string  `json:"processed_at"`
	TotalTimeTaken      float64 `json:"total_time_taken"`
	EngineURL           string  `json:"engine_url"`
	HTMLURL             string  `json:"html_url"`
	JSONURL             string  `json:"json_url"`
	LocationAutoMessage *string `json:"location_auto_message,omitempty"`
}

// SearchParameters echoes the query parameters back in the response.
type SearchParameters struct {
	Location string `json:"location"`
	Query    string `json:"q"`
}

type SearchInformation struct {
	OriginalQueryYieldsZeroResults bool    `json:"original_query_yields_zero_results"`
	TotalResults                   uint    `json:"total_results"`
	TimeTakenDisplayed             float64 `json:"time_taken_displayed"`
	QueryDisplayed                 string  `json:"query_displayed"`
	DetectedLocation               *string `json:"detected_location,omitempty"`
}

type Ad struct {
	Position      uint         `json:"position"`
	BlockPosition string       `json:"block_position"`
	Title         string       `json:"title"`
	Link          string       `json:"link"`
	Domain        string       `json:"domain"`
	DisplayedLink string       `json:"displayed_link"`
	Description   string       `json:"description"`
	Sitelinks     []AdSitelink `json:"sitelinks,omitempty"` // nil when absent
}

type AdSitelink struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

type OrganicResult struct {
	Position       uint     `json:"position"`
	Title          string   `json:"title"`
	Link           string   `json:"link"`
	Domain         string   `json:"domain"`
	DisplayedLink  string   `json:"displayed_link"`
	Snippet        string   `json:"snippet"`
	Prerender      bool     `json:"prerender"`
	SnippetMatched []string `json:"snippet_matched,omitempty"` // nil when absent
	BlockPosition  uint     `json:"block_position"`
}

type TopStory struct {
	Link             string `json:"link"`
	Title            string `json:"title"`
	VisibleInitially bool   `json:"visible_initially"`
	Source           string `json:"source"`
	Date             string `json:"date"`
	DateUTC          string `json:"date_utc"`
	BlockPosition    uint   `json:"block_position"`
}

type TopProduct struct {
	Title          string                    `json:"title"`
	Price          string                    `json:"price"`
	Rating         float64                   `json:"rating"`
	Sources        []TopProductSource        `json:"sources"`
	Specifications []TopProductSpecification `json:"specifications"`
	BlockPosition  uint                      `json:"block_position"`
}

type TopProductSource struct {
	Name  string `json:"name"`
	Link  string `json:"link"`
	Title string `json:"title"`
}

type TopProductSpecification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type RelatedQuestion struct {
	Question      string                `json:"question"`
	Answer        string                `json:"answer"`
	Source        RelatedQuestionSource `json:"source"`
	BlockPosition uint                  `json:"block_position"`
}

type RelatedQuestionSource struct {
	Link          string `json:"link"`
	DisplayedLink string `json:"displayed_link"`
	Title         string `json:"title"`
}

type RelatedSearch struct {
	Query string `json:"query"`
	Link  string `json:"link"`
}

// LocationsResponse is the decoded body of a /locations response. Unlike the
// search schema it has no optional sections: every field is required.
type LocationsResponse struct {
	RequestInfo               LocationsRequestInfo `json:"request_info"`
	LocationsTotal            int                  `json:"locations_total"`
	LocationsTotalCurrentPage int                  `json:"locations_total_current_page"`
	Page                      int                  `json:"page"`
	Limit                     int                  `json:"limit"`
	Locations                 []Location           `json:"locations"`
}

type LocationsRequestInfo struct {
	Success bool `json:"success"`
}

type Location struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	Type           string         `json:"type"`
	FullName       string         `json:"full_name"`
	ParentID       int            `json:"parent_id"`
	CountryCode    string         `json:"country_code"`
	Reach          uint           `json:"reach"`
	GPSCoordinates GPSCoordinates `json:"gps_coordinates"`
}

type GPSCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
