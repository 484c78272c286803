package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/wellnest/internal/llm"
	"github.com/abhisek/wellnest/internal/profile"
)

type sinkFunc func(profile.Domain, profile.Section)

func (f sinkFunc) Record(d profile.Domain, s profile.Section) { f(d, s) }

func TestAnalyze_EmptyNameSkipsModel(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := NewAnalyzer(mock, nil, nil).Analyze(context.Background(), "   ")
	if !errors.Is(err, ErrEmptyFood) {
		t.Fatalf("err = %v, want ErrEmptyFood", err)
	}
	if mock.CallCount() != 0 {
		t.Errorf("model called %d times", mock.CallCount())
	}
}

func TestAnalyze_Records(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"food_name": "Avocado",
		"summary": "Rich in healthy fats.",
		"nutrition": {"calories":"160 kcal","protein":"2 g","carbs":"9 g","fiber":"7 g","fat":"15 g","vitamins":"K, E, C"},
		"recommendation": "Great at breakfast."
	}`)})

	var got []profile.Section
	sink := sinkFunc(func(d profile.Domain, s profile.Section) {
		if d != profile.Nutrition {
			t.Errorf("recorded under %s", d)
		}
		got = append(got, s)
	})

	res, err := NewAnalyzer(mock, sink, nil).Analyze(context.Background(), " Avocado ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Error || res.Nutrition.Fiber != "7 g" {
		t.Errorf("unexpected analysis: %+v", res)
	}
	if len(got) != 1 || got[0].String("foodName") != "Avocado" {
		t.Errorf("recorded = %v", got)
	}
	if mock.Requests()[0].Messages[0].Content != "Food item: Avocado" {
		t.Errorf("prompt = %q", mock.Requests()[0].Messages[0].Content)
	}
}

func TestAnalyze_Failures(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
		msg  string
	}{
		{"provider", llm.MockResponse{Err: &llm.ErrProviderUnavailable{}}, "An error occurred while analyzing the food item."},
		{"malformed", llm.MockResponse{Content: json.RawMessage(`{"food_name":"Pizza"}`)}, "Invalid AI response format."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var recorded profile.Section
			sink := sinkFunc(func(_ profile.Domain, s profile.Section) { recorded = s })

			res, err := NewAnalyzer(llm.NewMockProvider(tt.resp), sink, nil).Analyze(context.Background(), "Pizza")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.Error || res.Message != tt.msg {
				t.Errorf("got %+v, want message %q", res, tt.msg)
			}
			if recorded["error"] != true {
				t.Errorf("error state not recorded: %v", recorded)
			}
		})
	}
}
