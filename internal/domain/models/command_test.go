package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/central-university-dev/go-bed-caller/internal/domain/models"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantType models.CommandType
		wantArgs string
	}{
		{
			name:     "команда без аргументов",
			text:     "#list",
			wantType: models.CommandList,
			wantArgs: "",
		},
		{
			name:     "команда с аргументами",
			text:     "#alarm 7:30 1-5 #работа",
			wantType: models.CommandAlarm,
			wantArgs: "7:30 1-5 #работа",
		},
		{
			name:     "строгий будильник",
			text:     "#alarm! 7:30",
			wantType: models.CommandStrictAlarm,
			wantArgs: "7:30",
		},
		{
			name:     "sleep без восклицательного знака",
			text:     "#sleep",
			wantType: models.CommandSleep,
			wantArgs: "",
		},
		{
			name:     "sleep с подтверждением",
			text:     "#sleep!",
			wantType: models.CommandSleepConfirm,
			wantArgs: "",
		},
		{
			name:     "лишние пробелы",
			text:     "  #disalarm   0  ",
			wantType: models.CommandDisalarm,
			wantArgs: "0",
		},
		{
			name:     "неизвестная команда",
			text:     "#frobnicate",
			wantType: models.CommandUnknown,
			wantArgs: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmdType, args := models.ParseCommand(tt.text)

			assert.Equal(t, tt.wantType, cmdType)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
