package models

import (
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  CommandType
		args  []string
	}{
		{"/summary", CommandSummary, nil},
		{"  SUMMARY  ", CommandSummary, nil},
		{"/rooms 2025-06-10", CommandRooms, []string{"2025-06-10"}},
		{"/available Suite-A today", CommandAvailable, []string{"Suite-A", "today"}},
		{"help", CommandHelp, nil},
		{"/eggs 12", CommandUnknown, []string{"12"}},
		{"", CommandUnknown, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseCommand(tt.input)
			if got.Type != tt.want {
				t.Fatalf("type = %s, want %s", got.Type, tt.want)
			}
			if !reflect.DeepEqual(got.Args, tt.args) {
				t.Fatalf("args = %v, want %v", got.Args, tt.args)
			}
		})
	}
}

func TestInboundMessageBody(t *testing.T) {
	text := InboundMessage{Text: &TextContent{Body: "/summary"}}
	button := InboundMessage{Interactive: &InteractiveContent{ButtonReply: &ButtonReply{ID: "/help"}}}
	if text.Body() != "/summary" || button.Body() != "/help" || (InboundMessage{}).Body() != "" {
		t.Fatalf("unexpected bodies")
	}
}

func TestWebhookPayloadMessages(t *testing.T) {
	p := WebhookPayload{Entry: []WebhookEntry{
		{Changes: []WebhookChange{{Value: WebhookValue{Messages: []InboundMessage{{ID: "a"}, {ID: "b"}}}}}},
		{Changes: []WebhookChange{{Value: WebhookValue{}}, {Value: WebhookValue{Messages: []InboundMessage{{ID: "c"}}}}}},
	}}

	var ids []string
	for _, m := range p.Messages() {
		ids = append(ids, m.ID)
	}
	if !reflect.DeepEqual(ids, []string{"a", "b", "c"}) {
		t.Fatalf("ids = %v", ids)
	}
	if len((WebhookPayload{}).Messages()) != 0 {
		t.Fatalf("empty payload has messages")
	}
}
