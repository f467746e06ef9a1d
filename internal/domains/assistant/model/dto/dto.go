package dto

import (
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

const (
	ToolBookRooms     = "book_rooms"
	ToolSetRoomStatus = "set_room_status"

	ResultOK     = "ok"
	ResultFailed = "failed"
)

// SummaryResponse always carries displayable text, a placeholder when no summary could be made.
type SummaryResponse struct {
	Summary    string `json:"summary"`
	Version    uint64 `json:"version"`
	Cached     bool   `json:"cached"`
	Superseded bool   `json:"superseded"`
}

type ToolsResponse struct {
	SystemInstruction string        `json:"system_instruction"`
	Tools             []*genai.Tool `json:"tools"`
}

type ToolCallsRequest struct {
	FunctionCalls []*genai.FunctionCall `json:"function_calls" validate:"required,min=1,dive,required"`
}

type ToolCallsResponse struct {
	FunctionResponses []*genai.FunctionResponse `json:"function_responses"`
}

type BookRoomsArgs struct {
	GuestName string   `json:"guestName"`
	RoomNames []string `json:"roomNames"`
	StartDate string   `json:"startDate"`
	Nights    float64  `json:"nights"`
}

type SetRoomStatusArgs struct {
	RoomName string `json:"roomName"`
	Status   string `json:"status"`
}

// DecodeArgs copies the loosely typed arguments of a function call into dst.
func DecodeArgs(args map[string]any, dst any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to encode tool arguments: %w", err)
	}

	if err = json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid tool arguments: %w", err)
	}

	return nil
}

// Respond builds the reply to call. A non-nil err turns the result into "failed".
func Respond(call *genai.FunctionCall, err error, extra map[string]any) *genai.FunctionResponse {
	response := map[string]any{"result": ResultOK}
	for k, v := range extra {
		response[k] = v
	}

	if err != nil {
		response["result"] = ResultFailed
		response["error"] = err.Error()
	}

	return &genai.FunctionResponse{
		ID:       call.ID,
		Name:     call.Name,
		Response: response,
	}
}
