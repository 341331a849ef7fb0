package service

import (
	"errors"
	"strconv"
	"strings"
	"wardenbot/state"
	"wardenbot/util"
)

var muteDurations = map[string]int{
	"15m": 15, "30m": 30, "1h": 60, "3h": 180, "6h": 360,
	"12h": 720, "1d": 1440, "3d": 4320, "7d": 10080, "30d": 43200,
}

// parseDuration accepts the preset table plus bare minutes and
// m/h/d/w suffixed numbers.
func parseDuration(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if minutes, ok := muteDurations[s]; ok {
		return minutes, true
	}
	mult := 1
	num := s
	switch {
	case strings.HasSuffix(s, "m"):
		num = s[:len(s)-1]
	case strings.HasSuffix(s, "h"):
		mult = 60
		num = s[:len(s)-1]
	case strings.HasSuffix(s, "d"):
		mult = 1440
		num = s[:len(s)-1]
	case strings.HasSuffix(s, "w"):
		mult = 10080
		num = s[:len(s)-1]
	}
	n, err := strconv.Atoi(num)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n * mult, true
}

func formatMinutes(minutes int) string {
	switch {
	case minutes >= 10080:
		return util.StrBuilder(util.NumToStr(minutes/10080), "w")
	case minutes >= 1440:
		return util.StrBuilder(util.NumToStr(minutes/1440), "d")
	case minutes >= 60:
		return util.StrBuilder(util.NumToStr(minutes/60), "h")
	default:
		return util.StrBuilder(util.NumToStr(minutes), "m")
	}
}

// errorText translates engine errors into reply text. Engine errors
// never escape the service layer untranslated.
func errorText(err error) string {
	var pd *state.PermissionDeniedError
	if errors.As(err, &pd) {
		return util.StrBuilder("you need ", pd.Required.String(), " rights for that")
	}
	switch {
	case errors.Is(err, state.ErrGloballyBanned):
		return "you are banned globally"
	case errors.Is(err, state.ErrSelfTarget):
		return "you cannot target yourself"
	case errors.Is(err, state.ErrTargetPrivileged):
		return "administrators cannot be targeted"
	case errors.Is(err, state.ErrAlreadyBanned):
		return "this user is already banned"
	case errors.Is(err, state.ErrNotBanned):
		return "this user is not banned"
	case errors.Is(err, state.ErrNotMuted):
		return "this user is not muted"
	case errors.Is(err, state.ErrNicknameTooLong):
		return "nickname is too long (max 32 characters)"
	case errors.Is(err, state.ErrRoleNotFound):
		return "no such role"
	case errors.Is(err, state.ErrUserLacksRole):
		return "this user does not have that role"
	case errors.Is(err, state.ErrAlreadyHasRole):
		return "this user already has that role"
	case errors.Is(err, state.ErrCommandNotFound):
		return "no such custom command"
	}
	return "something went wrong"
}
