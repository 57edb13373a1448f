package model

import "time"

// SearchType classifies a search event for the dashboard.
type SearchType string

const (
	SearchTypePlain      SearchType = "plain"
	SearchTypeFiltered   SearchType = "filtered"
	SearchTypeZeroResult SearchType = "zero_result"
)

// SearchEvent represents a single search event for analytics tracking
type SearchEvent struct {
	Query        string        `json:"query"`
	Category     string        `json:"category,omitempty"`
	TimeBucket   string        `json:"time_bucket,omitempty"`
	ResponseTime time.Duration `json:"response_time"`
	ResultCount  int           `json:"result_count"`
	Generation   uint64        `json:"generation"`
	Cached       bool          `json:"cached,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
}

// Type derives the dashboard search type. Zero results take precedence.
func (e SearchEvent) Type() SearchType {
	switch {
	case e.ResultCount == 0:
		return SearchTypeZeroResult
	case e.Category != "" || e.TimeBucket != "":
		return SearchTypeFiltered
	default:
		return SearchTypePlain
	}
}

// PopularSearch represents aggregated data for a search term
type PopularSearch struct {
	Query       string `json:"query"`
	SearchCount int    `json:"search_count"`
}

// ResponseTimeDistribution represents response time distribution buckets
type ResponseTimeDistribution struct {
	Bucket0To1ms     int     `json:"bucket_0_1ms"`
	Bucket1To5ms     int     `json:"bucket_1_5ms"`
	Bucket5To25ms    int     `json:"bucket_5_25ms"`
	Bucket25msPlus   int     `json:"bucket_25ms_plus"`
	Percentage0To1   float64 `json:"percentage_0_1"`
	Percentage1To5   float64 `json:"percentage_1_5"`
	Percentage5To25  float64 `json:"percentage_5_25"`
	Percentage25Plus float64 `json:"percentage_25_plus"`
}

// SearchTypeStats counts searches per SearchType
type SearchTypeStats struct {
	Plain      int `json:"plain"`
	Filtered   int `json:"filtered"`
	ZeroResult int `json:"zero_result"`
}

// SearchPerformanceHourly represents hourly search performance data
type SearchPerformanceHourly struct {
	Hour            int   `json:"hour"`
	SearchCount     int   `json:"search_count"`
	AvgResponseTime int64 `json:"avg_response_time"` // in microseconds
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	// Summary metrics, last 24 hours against the 24 hours before
	TotalSearches         int     `json:"total_searches"`
	SearchesChangePercent float64 `json:"searches_change_percent"`
	AvgResponseTime       int64   `json:"avg_response_time"` // in microseconds
	ResponseTimeChange    string  `json:"response_time_change"`
	CacheHitPercent       float64 `json:"cache_hit_percent"`
	TotalRecipes          int     `json:"total_recipes"`
	IndexGeneration       uint64  `json:"index_generation"`

	// Detailed analytics
	SearchPerformance24h     []SearchPerformanceHourly `json:"search_performance_24h"`
	PopularSearches          []PopularSearch           `json:"popular_searches"`     // last 7 days
	ZeroResultSearches       []PopularSearch           `json:"zero_result_searches"` // last 7 days
	PopularCategories        []PopularSearch           `json:"popular_categories"`   // last 7 days
	ResponseTimeDistribution ResponseTimeDistribution  `json:"response_time_distribution"`
	SearchTypes              SearchTypeStats           `json:"search_types"`
}
