// Package seed loads the property's fixed inventory: its rooms and the staff who work the desk.
package seed

import (
	"context"
	"fmt"
	"roomboard/config"
	roomModel "roomboard/internal/domains/room/model"
	roomRepo "roomboard/internal/domains/room/repository"
	staffModel "roomboard/internal/domains/staff/model"
	staffRepo "roomboard/internal/domains/staff/repository"
	"roomboard/shared/password"

	"github.com/rs/zerolog/log"
)

var roomNumbers = []struct {
	number string
	kind   roomModel.Type
}{
	{"101", roomModel.TypeTwin},
	{"102", roomModel.TypeTwin},
	{"103", roomModel.TypeTwin},
	{"104", roomModel.TypeDouble},
	{"105", roomModel.TypeDouble},
	{"106", roomModel.TypeDouble},
	{"201", roomModel.TypeDouble},
	{"202", roomModel.TypeTwin},
	{"203", roomModel.TypeTwin},
	{"204", roomModel.TypeTwin},
	{"205", roomModel.TypeDouble},
	{"206", roomModel.TypeDouble},
	{"301", roomModel.TypeDouble},
}

var staffNames = []struct {
	id   string
	name string
}{
	{"s1", "Bestey"},
	{"s2", "Faari"},
	{"s3", "Fazaal"},
	{"s4", "Sliver"},
	{"s5", "Aisha"},
}

// Rooms returns the property's rooms, all Ready, in canonical order.
func Rooms() []roomModel.Room {
	rooms := make([]roomModel.Room, len(roomNumbers))
	for i, r := range roomNumbers {
		rooms[i] = roomModel.Room{
			ID:     r.number,
			Name:   "Room " + r.number,
			Type:   r.kind,
			Status: roomModel.StatusReady,
		}
	}

	return rooms
}

// Staff returns the desk staff. Codes from APP_STAFF_PINS are hashed with cost.
func Staff(pins map[string]string, cost int) ([]staffModel.Staff, error) {
	staff := make([]staffModel.Staff, len(staffNames))
	for i, s := range staffNames {
		staff[i] = staffModel.Staff{ID: s.id, Name: s.name}

		pin, ok := pins[s.id]
		if !ok {
			continue
		}

		hash, err := password.HashWithCost(pin, cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash pin for staff %s: %w", s.id, err)
		}

		staff[i].PinHash = hash
	}

	return staff, nil
}

// Load fills empty repositories with the default inventory.
func Load(ctx context.Context, cfg *config.Config, rooms roomRepo.Room, staff staffRepo.Staff) error {
	if err := rooms.InsertBulk(ctx, Rooms()); err != nil {
		return fmt.Errorf("failed to seed rooms: %w", err)
	}

	members, err := Staff(cfg.App.StaffPins, password.DefaultCost)
	if err != nil {
		return err
	}

	if err = staff.InsertBulk(ctx, members); err != nil {
		return fmt.Errorf("failed to seed staff: %w", err)
	}

	log.Info().Int("rooms", len(roomNumbers)).Int("staff", len(members)).Msg("Inventory seeded")

	return nil
}
