package classifier_test

import (
	"testing"

	"github.com/civicsetu/resolver/internal/classifier"
	"github.com/civicsetu/resolver/internal/domain"
	"github.com/civicsetu/resolver/internal/logger"
)

func TestEngine_Classify_RejectsNonCivicPosts(t *testing.T) {
	engine := classifier.NewEngine(logger.NewNop())

	testCases := []struct {
		name  string
		title string
		body  string
	}{
		{
			name:  "no civic keywords at all",
			title: "Best restaurants for dinner tonight",
			body:  "Looking for recommendations in the city.",
		},
		{
			name:  "single keyword stays below threshold",
			title: "The water here tastes great",
			body:  "Really enjoying the neighbourhood.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := engine.Classify(tc.title, tc.body)

			if result.IsCivic {
				t.Fatalf("expected rejection, got civic result %+v", result)
			}
			if result.RejectionReason != "No civic keywords detected" {
				t.Errorf("rejection reason = %q", result.RejectionReason)
			}
			if result.Department != "" {
				t.Errorf("rejected post must not carry a department, got %q", result.Department)
			}
		})
	}
}

func TestEngine_Classify_DepartmentAndUrgency(t *testing.T) {
	engine := classifier.NewEngine(logger.NewNop())

	testCases := []struct {
		name           string
		title          string
		body           string
		wantDepartment string
		wantUrgency    string
		wantConfidence int
		wantScore      int
	}{
		{
			name:           "road damage routes to PWD with high urgency",
			title:          "Massive pothole on the main road",
			body:           "Potholes near the market have caused two accidents and one injured person this week.",
			wantDepartment: domain.DepartmentPWD,
			wantUrgency:    domain.UrgencyHigh,
			wantConfidence: 85,
			wantScore:      3,
		},
		{
			name:           "water outage routes to Jal Board",
			title:          "No water supply in our colony",
			body:           "There has been no water for five days and the jal board tanker never comes.",
			wantDepartment: domain.DepartmentJalBoard,
			wantUrgency:    domain.UrgencyHigh,
			wantConfidence: 95,
			wantScore:      7,
		},
		{
			name:           "tie keeps the earlier department",
			title:          "The road is blocked by traffic today",
			body:           "",
			wantDepartment: domain.DepartmentPWD,
			wantUrgency:    domain.UrgencyLow,
			wantConfidence: 60,
			wantScore:      1,
		},
		{
			name:           "unclaimed civic post falls back to General with medium urgency",
			title:          "Filed a complaint with the municipal office",
			body:           "There is no response and no repair was done.",
			wantDepartment: domain.DepartmentGeneral,
			wantUrgency:    domain.UrgencyMedium,
			wantConfidence: 40,
			wantScore:      0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := engine.Classify(tc.title, tc.body)

			if !result.IsCivic {
				t.Fatalf("expected civic result, got rejection %q", result.RejectionReason)
			}
			if result.Department != tc.wantDepartment {
				t.Errorf("department = %q, want %q", result.Department, tc.wantDepartment)
			}
			if result.Urgency != tc.wantUrgency {
				t.Errorf("urgency = %q, want %q", result.Urgency, tc.wantUrgency)
			}
			if result.Confidence != tc.wantConfidence {
				t.Errorf("confidence = %d, want %d", result.Confidence, tc.wantConfidence)
			}
			if result.KeywordScore != tc.wantScore {
				t.Errorf("keyword score = %d, want %d", result.KeywordScore, tc.wantScore)
			}
		})
	}
}

func TestEngine_Classify_Deterministic(t *testing.T) {
	engine := classifier.NewEngine(logger.NewNop())

	title := "Garbage dump overflowing near the park"
	body := "The dustbin has not been emptied in days and the smell is unbearable."

	first := engine.Classify(title, body)
	for i := 0; i < 5; i++ {
		if got := engine.Classify(title, body); got != first {
			t.Fatalf("classification not deterministic: %+v vs %+v", got, first)
		}
	}

	if first.Department != domain.DepartmentSanitation {
		t.Errorf("department = %q, want %q", first.Department, domain.DepartmentSanitation)
	}
}
