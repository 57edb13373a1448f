package analytics

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gcbaptista/recipe-search/internal/logger"
	"github.com/gcbaptista/recipe-search/internal/tokenizer"
	"github.com/gcbaptista/recipe-search/model"
	"github.com/gcbaptista/recipe-search/services"
)

const (
	maxEventsToKeep = 10000 // Keep last 10k events for performance
	topListSize     = 10
	day             = 24 * time.Hour
	week            = 7 * day
)

// IndexStatsProvider reports the size of the served index.
type IndexStatsProvider interface {
	Stats() services.IndexStats
}

// Service implements analytics tracking and reporting
type Service struct {
	mutex        sync.RWMutex
	events       []model.SearchEvent
	index        IndexStatsProvider
	dataFilePath string // Empty disables persistence
	now          func() time.Time
	logger       *slog.Logger
}

// NewService creates a new analytics service. When dataFilePath is set,
// events saved by a previous run are loaded from it.
func NewService(index IndexStatsProvider, dataFilePath string) *Service {
	service := &Service{
		events:       make([]model.SearchEvent, 0),
		index:        index,
		dataFilePath: dataFilePath,
		now:          time.Now,
		logger:       logger.WithComponent("analytics"),
	}

	if err := service.loadData(); err != nil {
		service.logger.Warn("failed to load analytics data", "path", dataFilePath, "error", err)
	}

	return service
}

// TrackSearchEvent records a new search event
func (s *Service) TrackSearchEvent(event model.SearchEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
}

// GetDashboardData returns complete analytics dashboard data
func (s *Service) GetDashboardData() model.AnalyticsDashboard {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	now := s.now()
	last24hEvents := filterEventsByTimeRange(s.events, now.Add(-day), now)
	prev24hEvents := filterEventsByTimeRange(s.events, now.Add(-2*day), now.Add(-day))
	lastWeekEvents := filterEventsByTimeRange(s.events, now.Add(-week), now)

	indexStats := s.index.Stats()

	return model.AnalyticsDashboard{
		TotalSearches:            len(last24hEvents),
		SearchesChangePercent:    calculateChangePercent(len(last24hEvents), len(prev24hEvents)),
		AvgResponseTime:          calculateAvgResponseTime(last24hEvents),
		ResponseTimeChange:       calculateResponseTimeChange(last24hEvents, prev24hEvents),
		CacheHitPercent:          calculateCacheHitPercent(last24hEvents),
		TotalRecipes:             indexStats.TotalRecipes,
		IndexGeneration:          indexStats.Generation,
		SearchPerformance24h:     getHourlyPerformance(last24hEvents),
		PopularSearches:          topCounts(lastWeekEvents, normalizedQuery),
		ZeroResultSearches:       topCounts(lastWeekEvents, zeroResultQuery),
		PopularCategories:        topCounts(lastWeekEvents, func(e model.SearchEvent) string { return e.Category }),
		ResponseTimeDistribution: getResponseTimeDistribution(last24hEvents),
		SearchTypes:              getSearchTypeStats(last24hEvents),
	}
}

// filterEventsByTimeRange returns events in (start, end]
func filterEventsByTimeRange(events []model.SearchEvent, start, end time.Time) []model.SearchEvent {
	var filtered []model.SearchEvent
	for _, event := range events {
		if event.Timestamp.After(start) && !event.Timestamp.After(end) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// calculateChangePercent calculates percentage change between current and previous values
func calculateChangePercent(current, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100.0
		}
		return 0.0
	}
	return float64(current-previous) / float64(previous) * 100.0
}

// calculateAvgResponseTime returns the mean response time in microseconds
func calculateAvgResponseTime(events []model.SearchEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	return (total / time.Duration(len(events))).Microseconds()
}

func calculateResponseTimeChange(current, previous []model.SearchEvent) string {
	currentAvg := calculateAvgResponseTime(current)
	previousAvg := calculateAvgResponseTime(previous)

	if previousAvg == 0 {
		return "stable"
	}

	change := float64(currentAvg-previousAvg) / float64(previousAvg)
	if change > 0.1 {
		return "up"
	} else if change < -0.1 {
		return "down"
	}
	return "stable"
}

func calculateCacheHitPercent(events []model.SearchEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	hits := 0
	for _, event := range events {
		if event.Cached {
			hits++
		}
	}
	return float64(hits) / float64(len(events)) * 100
}

// getHourlyPerformance buckets events by hour of day
func getHourlyPerformance(events []model.SearchEvent) []model.SearchPerformanceHourly {
	hourlyData := make(map[int][]model.SearchEvent)
	for _, event := range events {
		hour := event.Timestamp.Hour()
		hourlyData[hour] = append(hourlyData[hour], event)
	}

	performance := make([]model.SearchPerformanceHourly, 0, 24)
	for hour := 0; hour < 24; hour++ {
		hourEvents := hourlyData[hour]
		performance = append(performance, model.SearchPerformanceHourly{
			Hour:            hour,
			SearchCount:     len(hourEvents),
			AvgResponseTime: calculateAvgResponseTime(hourEvents),
		})
	}
	return performance
}

// normalizedQuery groups "Laks", "laks " and "LAKS" together.
func normalizedQuery(event model.SearchEvent) string {
	return tokenizer.Normalize(event.Query)
}

func zeroResultQuery(event model.SearchEvent) string {
	if event.ResultCount > 0 {
		return ""
	}
	return normalizedQuery(event)
}

// topCounts counts the non-empty keys of events and returns the most frequent,
// ties broken alphabetically.
func topCounts(events []model.SearchEvent, key func(model.SearchEvent) string) []model.PopularSearch {
	counts := make(map[string]int)
	for _, event := range events {
		if k := strings.TrimSpace(key(event)); k != "" {
			counts[k]++
		}
	}

	popular := make([]model.PopularSearch, 0, len(counts))
	for query, count := range counts {
		popular = append(popular, model.PopularSearch{Query: query, SearchCount: count})
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].SearchCount != popular[j].SearchCount {
			return popular[i].SearchCount > popular[j].SearchCount
		}
		return popular[i].Query < popular[j].Query
	})

	if len(popular) > topListSize {
		popular = popular[:topListSize]
	}
	return popular
}

func getResponseTimeDistribution(events []model.SearchEvent) model.ResponseTimeDistribution {
	dist := model.ResponseTimeDistribution{}
	total := len(events)
	if total == 0 {
		return dist
	}

	for _, event := range events {
		switch {
		case event.ResponseTime <= time.Millisecond:
			dist.Bucket0To1ms++
		case event.ResponseTime <= 5*time.Millisecond:
			dist.Bucket1To5ms++
		case event.ResponseTime <= 25*time.Millisecond:
			dist.Bucket5To25ms++
		default:
			dist.Bucket25msPlus++
		}
	}

	dist.Percentage0To1 = float64(dist.Bucket0To1ms) / float64(total) * 100
	dist.Percentage1To5 = float64(dist.Bucket1To5ms) / float64(total) * 100
	dist.Percentage5To25 = float64(dist.Bucket5To25ms) / float64(total) * 100
	dist.Percentage25Plus = float64(dist.Bucket25msPlus) / float64(total) * 100
	return dist
}

func getSearchTypeStats(events []model.SearchEvent) model.SearchTypeStats {
	stats := model.SearchTypeStats{}
	for _, event := range events {
		switch event.Type() {
		case model.SearchTypePlain:
			stats.Plain++
		case model.SearchTypeFiltered:
			stats.Filtered++
		case model.SearchTypeZeroResult:
			stats.ZeroResult++
		}
	}
	return stats
}

// loadData loads analytics data from file
func (s *Service) loadData() error {
	if s.dataFilePath == "" {
		return nil
	}

	data, err := os.ReadFile(s.dataFilePath)
	if os.IsNotExist(err) {
		return nil // File doesn't exist yet, that's okay
	}
	if err != nil {
		return fmt.Errorf("failed to read analytics file: %w", err)
	}

	var events []model.SearchEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return fmt.Errorf("failed to unmarshal analytics data: %w", err)
	}
	if len(events) > maxEventsToKeep {
		events = events[len(events)-maxEventsToKeep:]
	}
	s.events = events
	return nil
}

// Save writes the retained events to the data file, if one is configured.
func (s *Service) Save() error {
	if s.dataFilePath == "" {
		return nil
	}

	s.mutex.RLock()
	data, err := json.Marshal(s.events)
	s.mutex.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal analytics data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.dataFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create analytics directory: %w", err)
	}
	if err := os.WriteFile(s.dataFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write analytics file: %w", err)
	}
	return nil
}
