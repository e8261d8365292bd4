package trainer

import (
	"context"
	"math/rand"
	"strings"
)

var cannedResponses = map[string][]string{
	"exercise": {
		"Remember to warm up properly before intense workouts!",
		"Great job on staying consistent with your exercise routine!",
		"Try incorporating more compound exercises for better results.",
		"Don't forget to take rest days to allow your body to recover.",
	},
	"nutrition": {
		"Make sure you're getting enough protein in your diet!",
		"Stay hydrated! Aim for at least 8 glasses of water daily.",
		"Consider adding more colorful vegetables to your meals.",
		"Remember to eat within 30 minutes after your workout.",
	},
	"sleep": {
		"Aim for 7-9 hours of quality sleep each night.",
		"Create a consistent sleep schedule, even on weekends.",
		"Avoid screens at least an hour before bedtime.",
		"Make sure your bedroom is cool and dark for optimal sleep.",
	},
	"default": {
		"Keep pushing towards your fitness goals!",
		"Small progress is still progress.",
		"Consistency is key to achieving your goals.",
		"Remember, every expert was once a beginner.",
	},
}

var topicKeywords = map[string][]string{
	"exercise":  {"exercise", "workout", "training"},
	"nutrition": {"nutrition", "food", "diet"},
	"sleep":     {"sleep", "rest", "recovery"},
}

// CannedResponder picks a fixed coaching tip based on keywords in the
// message. It is the reply strategy used when no OpenAI key is configured,
// and it cannot fail.
type CannedResponder struct {
	pick func(n int) int
}

func NewCannedResponder() *CannedResponder {
	return &CannedResponder{pick: rand.Intn}
}

func matchTopic(message string) string {
	lower := strings.ToLower(message)
	for _, topic := range []string{"exercise", "nutrition", "sleep"} {
		for _, kw := range topicKeywords[topic] {
			if strings.Contains(lower, kw) {
				return topic
			}
		}
	}
	return "default"
}

func (c *CannedResponder) Reply(ctx context.Context, message string) (string, error) {
	responses := cannedResponses[matchTopic(message)]
	return responses[c.pick(len(responses))], nil
}
