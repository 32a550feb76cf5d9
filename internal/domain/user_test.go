package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGroupName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    GroupName
		wantErr bool
	}{
		{"simple group", "ИУ7-13", "ИУ7-13", false},
		{"lowercased input", "иу7-13", "ИУ7-13", false},
		{"letter suffix", "РК6-11Б", "РК6-11Б", false},
		{"branch group", "ИУК4-21", "ИУК4-21", false},
		{"dotted group", "ИУ5-1.13", "ИУ5-1.13", false},
		{"empty", "", "", true},
		{"no dash", "ИУ713", "", true},
		{"latin letters", "IU7-13", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewGroupName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGroupNameIsFirstCourse(t *testing.T) {
	first, err := NewGroupName("ИУ7-13")
	require.NoError(t, err)
	assert.True(t, first.IsFirstCourse())

	senior, err := NewGroupName("ИУ7-53")
	require.NoError(t, err)
	assert.False(t, senior.IsFirstCourse())
}

func TestNewFullNameRejectsEmpty(t *testing.T) {
	_, err := NewFullName("")
	assert.Error(t, err)
}

func TestUserModeTransitions(t *testing.T) {
	user := NewUser(1, "durov", "Иванов Иван", "ИУ7-13")
	assert.Equal(t, ModeLookingForTeam, user.Mode())

	require.NoError(t, user.SwitchToSolo())
	assert.Equal(t, ModeSolo, user.Mode())

	require.NoError(t, user.SwitchToLookingForTeam())
	assert.Equal(t, ModeLookingForTeam, user.Mode())

	user.JoinedTeam()
	assert.Equal(t, ModeInTeam, user.Mode())

	var cantSwitch *ErrCannotSwitchMode
	assert.ErrorAs(t, user.SwitchToSolo(), &cantSwitch)
	assert.ErrorAs(t, user.SwitchToLookingForTeam(), &cantSwitch)

	user.LeftTeam()
	assert.Equal(t, ModeLookingForTeam, user.Mode())
}

func TestUserProfileChanges(t *testing.T) {
	user := NewUser(1, "", "Иванов Иван", "ИУ7-13")
	user.ChangeFullName("Петров Пётр")
	user.ChangeGroupName("РК6-21")
	assert.Equal(t, FullName("Петров Пётр"), user.FullName())
	assert.Equal(t, GroupName("РК6-21"), user.GroupName())
}
