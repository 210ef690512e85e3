package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUserLock = errors.New("user locked")
var ErrRankRefreshLock = errors.New("rank refresh locked")
var ErrUserNotFound = errors.New("user not found")
var ErrUsernameTaken = errors.New("username already in use")
var ErrEmailTaken = errors.New("email already in use")
var ErrRewardNotFound = errors.New("reward not found")
var ErrAchievementInUse = errors.New("achievement is held by users")
var ErrLevelOccupied = errors.New("level is occupied by users")
var ErrLevelThresholdOrder = errors.New("level thresholds must be non-decreasing")
var ErrAchievementNameTaken = errors.New("achievement name already in use")
var ErrInvalidPoints = errors.New("points must be positive")

const (
	CONFIG_SERVER_MODE            = "SERVER_MODE"
	CONFIG_LEADERBOARD_PAGE_SIZE  = "LEADERBOARD_PAGE_SIZE"
	CONFIG_LEADERBOARD_TOP_LIMIT  = "LEADERBOARD_TOP_LIMIT"
	CONFIG_CRONJOB_TIME_RANKS     = "CRONJOB_TIME_RANKS"
	CONFIG_DEFAULT_LEVEL_LABEL    = "DEFAULT_LEVEL_LABEL"
	CONFIG_TASK_POINTS_STRATEGY   = "TASK_POINTS_STRATEGY"
	CONFIG_FLAT_TASK_POINTS       = "FLAT_TASK_POINTS"
	CONFIG_TRANSACTION_PAGE_LIMIT = "TRANSACTION_PAGE_LIMIT"

	SERVER_MODE_DEVELOPMENT = "development"
	SERVER_MODE_STAGING     = "staging"
	SERVER_MODE_PRODUCTION  = "production"

	EVENT_TASK_ASSIGNED      = "TASK_ASSIGNED"
	EVENT_TASK_COMPLETED     = "TASK_COMPLETED"
	EVENT_LEVEL_UP           = "LEVEL_UP"
	EVENT_POINTS_EARNED      = "POINTS_EARNED"
	EVENT_POINTS_SPENT       = "POINTS_SPENT"
	EVENT_REWARD_REDEMPTION  = "REWARD_REDEMPTION"
	EVENT_REDEMPTION_REFUND  = "REDEMPTION_REFUND"
	EVENT_ACHIEVEMENT_EARNED = "ACHIEVEMENT_EARNED"

	CHANNEL_POINTS       = "points"
	CHANNEL_ACHIEVEMENTS = "achievements"
	CHANNEL_REDEMPTIONS  = "redemptions"
	CHANNEL_TASK_EVENTS  = "task-events"

	DEFAULT_LEVEL_LABEL  = "Beginner"
	DEFAULT_LEVEL_NUMBER = 1

	LEADERBOARD_DEFAULT_PAGE_SIZE = 20
	LEADERBOARD_DEFAULT_TOP_LIMIT = 10
	TRANSACTION_DEFAULT_LIMIT     = 50

	TASK_EVENT_RATE_LIMIT_PER_MINUTE = 60

	CACHE_TTL_5_SECONDS  = 5 * time.Second
	CACHE_TTL_15_SECONDS = 15 * time.Second
	CACHE_TTL_1_MIN      = 1 * time.Minute
	CACHE_TTL_5_MINS     = 5 * time.Minute
	CACHE_TTL_1_HOUR     = 1 * time.Hour
)

func LockKeyUserPoints(userID string) string {
	return fmt.Sprintf("lock:user-points:%s", userID)
}

func LockKeyUserRedemption(userID string) string {
	return fmt.Sprintf("lock:user-redemption:%s", userID)
}

func LockKeyRankRefresh() string {
	return "lock:rank-refresh"
}

// cache
func DBKeyUser(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}

func DBKeyUserLadderStatus(userID string) string {
	return fmt.Sprintf("user:ladder_status:%s", userID)
}

func DBKeyLadderLevels() string {
	return "ladder:levels"
}

func DBKeyLeaderboardPage(page, size int) string {
	return fmt.Sprintf("leaderboard:page:%d:%d", page, size)
}

func DBKeyLeaderboardDepartmentPage(department string, page, size int) string {
	return fmt.Sprintf("leaderboard:department:%s:%d:%d", department, page, size)
}

func DBKeyLeaderboardUser(userID string) string {
	return fmt.Sprintf("leaderboard:user:%s", userID)
}

func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", strings.ToLower(key))
}

func DBKeyAchievements() string {
	return "achievements:all"
}

func DBKeyUserAchievements(userID string) string {
	return fmt.Sprintf("user:achievements:%s", userID)
}

func DBKeyRewards() string {
	return "rewards:all"
}

func LimitKeyTaskEvents(userID string) string {
	return fmt.Sprintf("limit:task_events:%s", userID)
}
