package docs

import (
	"strings"
	"testing"
)

func TestGetAllTopics(t *testing.T) {
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	want := []string{"amortization", "dcf", "irr", "scenario"}
	if len(topics) != len(want) {
		t.Fatalf("GetAllTopics() = %v, want %v", topics, want)
	}
	for i := range want {
		if topics[i] != want[i] {
			t.Errorf("topic %d = %q, want %q", i, topics[i], want[i])
		}
	}
}

func TestEveryTopicLoads(t *testing.T) {
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			t.Errorf("GetTopic(%q) error = %v", topic, err)
		}
		if !strings.HasPrefix(content, "# ") {
			t.Errorf("topic %q should start with a title heading", topic)
		}
	}
}

func TestGetTopicNotFound(t *testing.T) {
	if _, err := GetTopic("no-such-topic"); err == nil {
		t.Error("GetTopic() expected an error for an unknown topic")
	}
}

func TestTitle(t *testing.T) {
	title, err := Title("irr")
	if err != nil {
		t.Fatalf("Title() error = %v", err)
	}
	if title != "Internal Rate of Return" {
		t.Errorf("Title(irr) = %q, want %q", title, "Internal Rate of Return")
	}
}

func TestIndexListsEveryTopic(t *testing.T) {
	index, err := Index()
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	topics, _ := GetAllTopics()
	for _, topic := range topics {
		if !strings.Contains(index, "`"+topic+"`") {
			t.Errorf("Index() misses topic %q:\n%s", topic, index)
		}
	}
}
