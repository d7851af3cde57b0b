package dto

import "time"

type StatsOverview struct {
	TotalSessions         int     `json:"total_sessions"`
	ActiveSessions        int     `json:"active_sessions"`
	TotalMessages         int     `json:"total_messages"`
	RecentMessages        int     `json:"recent_messages"`
	AvgMessagesPerSession int     `json:"average_messages_per_session"`
	MessagesPerDay        float64 `json:"messages_per_day"`
	DaysSinceFirstMessage int     `json:"days_since_first"`
}

type TextAnalysis struct {
	TotalMessages      int            `json:"total_messages"`
	TotalWords         int            `json:"total_words"`
	AvgWordsPerMessage int            `json:"avg_words_per_message"`
	TipCounts          map[string]int `json:"tip_counts"`
	UniqueAuthors      int            `json:"unique_authors"`
}

type SessionBreakdownItem struct {
	SessionId    string    `json:"session_id"`
	SessionName  string    `json:"session_name"`
	MessageCount int       `json:"message_count"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

type RecentActivity struct {
	Last7Days      int            `json:"last_7_days"`
	DailyBreakdown map[string]int `json:"daily_breakdown"`
}

type AuthorCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

type MostActiveDay struct {
	Date  string `json:"date,omitempty"`
	Count int    `json:"count"`
}

type StatsTimeline struct {
	FirstMessage  *time.Time    `json:"first_message"`
	LastMessage   *time.Time    `json:"last_message"`
	MostActiveDay MostActiveDay `json:"most_active_day"`
}

type StatsResponse struct {
	Overview        StatsOverview          `json:"overview"`
	TextAnalysis    TextAnalysis           `json:"text_analysis"`
	SessionsData    []SessionBreakdownItem `json:"sessions_data"`
	RecentActivity  RecentActivity         `json:"recent_activity"`
	TopAuthors      []AuthorCount          `json:"top_authors"`
	TipDistribution map[string]int         `json:"tip_distribution"`
	Timeline        StatsTimeline          `json:"timeline"`
	GeneratedAt     time.Time              `json:"generated_at"`
}
