package service

import (
	"context"
	"errors"
	"fmt"
	"roomboard/infras/otel"
	"roomboard/internal/domains/assistant/model/dto"
	bookingDto "roomboard/internal/domains/booking/model/dto"
	bookingService "roomboard/internal/domains/booking/service"
	roomModel "roomboard/internal/domains/room/model"
	roomRepo "roomboard/internal/domains/room/repository"
	roomService "roomboard/internal/domains/room/service"
	staffRepo "roomboard/internal/domains/staff/repository"
	"roomboard/shared/calendar"
	"roomboard/shared/constant"
	"roomboard/shared/event"
	"roomboard/shared/timezone"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const VoiceBookingNote = "Booked via AI Voice"

var (
	ErrUnknownTool   = errors.New("unknown tool")
	ErrNoRoomMatched = errors.New("no room matched")
)

// Voice turns assistant tool calls into the same booking and room commands staff issue by hand.
type Voice interface {
	Tools(ctx context.Context) dto.ToolsResponse
	Dispatch(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse
}

type voiceImpl struct {
	roomRepo  roomRepo.Room
	staffRepo staffRepo.Staff
	rooms     roomService.Room
	bookings  bookingService.Booking
	otel      otel.Otel
}

func NewVoice(roomRepo roomRepo.Room, staffRepo staffRepo.Staff, rooms roomService.Room, bookings bookingService.Booking, otel otel.Otel) Voice {
	return &voiceImpl{
		roomRepo:  roomRepo,
		staffRepo: staffRepo,
		rooms:     rooms,
		bookings:  bookings,
		otel:      otel,
	}
}

// Tools describes the callable functions and the instruction for the live model session.
func (v *voiceImpl) Tools(ctx context.Context) (res dto.ToolsResponse) {
	ctx, scope := v.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Tools")
	defer scope.End()

	rooms := v.roomRepo.GetAll(ctx)

	names := make([]string, len(rooms))
	for i, room := range rooms {
		names[i] = room.Name
	}

	statuses := make([]string, len(roomModel.Statuses))
	for i, status := range roomModel.Statuses {
		statuses[i] = string(status)
	}

	res.SystemInstruction = fmt.Sprintf(`You are the front desk voice assistant. Help staff manage rooms.
Available Rooms: %s.
Current Staff: %s.
You can:
1. Book one or multiple rooms. Ask for guest name, room numbers, start date, and number of nights if not provided.
2. Change room status (%s).
3. Give hotel status summaries.
Be professional, brief, and confirm actions before and after execution.`,
		strings.Join(names, ", "), v.activeStaffName(ctx), strings.Join(statuses, ", "))

	res.Tools = []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        dto.ToolBookRooms,
				Description: "Book the same stay in one or more rooms.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"guestName": {Type: genai.TypeString},
						"roomNames": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
						"startDate": {Type: genai.TypeString, Description: "ISO date YYYY-MM-DD"},
						"nights":    {Type: genai.TypeNumber},
					},
					Required: []string{"guestName", "roomNames", "startDate", "nights"},
				},
			},
			{
				Name:        dto.ToolSetRoomStatus,
				Description: "Set the status of a room.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"roomName": {Type: genai.TypeString},
						"status":   {Type: genai.TypeString, Enum: statuses},
					},
					Required: []string{"roomName", "status"},
				},
			},
		},
	}}

	return res
}

func (v *voiceImpl) activeStaffName(ctx context.Context) string {
	if name, ok := ctx.Value(constant.ContextKeyStaffName).(string); ok && name != constant.Empty {
		return name
	}

	if id, ok := ctx.Value(constant.ContextKeyStaffID).(string); ok {
		if staff, err := v.staffRepo.Get(ctx, id); err == nil {
			return staff.Name
		}
	}

	return "unknown"
}

// Dispatch runs one tool call. The response result is "ok" or "failed"; failures never
// return an error.
func (v *voiceImpl) Dispatch(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
	ctx, scope := v.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dispatch")
	defer scope.End()

	scope.SetAttribute("tool", call.Name)

	var (
		extra map[string]any
		err   error
	)

	switch call.Name {
	case dto.ToolBookRooms:
		extra, err = v.bookRooms(ctx, call.Args)
	case dto.ToolSetRoomStatus:
		extra, err = v.setRoomStatus(ctx, call.Args)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownTool, call.Name)
	}

	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("tool", call.Name).Msg("voice command failed")
	}

	return dto.Respond(call, err, extra)
}

func (v *voiceImpl) bookRooms(ctx context.Context, rawArgs map[string]any) (map[string]any, error) {
	var args dto.BookRoomsArgs
	if err := dto.DecodeArgs(rawArgs, &args); err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(args.RoomNames))
	for _, name := range args.RoomNames {
		wanted[name] = struct{}{}
	}

	var roomIDs []string

	for _, room := range v.roomRepo.GetAll(ctx) {
		if _, ok := wanted[room.Name]; ok {
			roomIDs = append(roomIDs, room.ID)
		}
	}

	if len(roomIDs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRoomMatched, strings.Join(args.RoomNames, ", "))
	}

	start, err := calendar.ParseDate(args.StartDate, timezone.GetLocation())
	if err != nil {
		return nil, fmt.Errorf("invalid startDate %q: %w", args.StartDate, err)
	}

	nights := int(args.Nights)
	if nights < 1 {
		nights = 1
	}

	res, err := v.bookings.Create(ctx, bookingDto.CreateBookingRequest{
		RoomIDs:   roomIDs,
		GuestName: args.GuestName,
		StartDate: calendar.FormatDate(start),
		EndDate:   calendar.FormatDate(calendar.AddNights(start, nights)),
		Notes:     VoiceBookingNote,
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	ids := make([]string, len(res.Bookings))
	for i, booking := range res.Bookings {
		ids[i] = booking.ID
	}

	return map[string]any{"bookingIds": ids}, nil
}

func (v *voiceImpl) setRoomStatus(ctx context.Context, rawArgs map[string]any) (map[string]any, error) {
	var args dto.SetRoomStatusArgs
	if err := dto.DecodeArgs(rawArgs, &args); err != nil {
		return nil, err
	}

	room, err := v.roomRepo.GetByName(ctx, args.RoomName)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	status, err := roomModel.ParseStatus(args.Status)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	updated, err := v.rooms.SetStatus(ctx, room.ID, status, event.ReasonVoice)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return map[string]any{"roomId": updated.ID, "status": updated.Status}, nil
}
