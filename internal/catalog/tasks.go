package catalog

import "sort"

type Platform string

const (
	PlatformTwitter   = Platform("twitter")
	PlatformInstagram = Platform("instagram")
	PlatformTiktok    = Platform("tiktok")
	PlatformFacebook  = Platform("facebook")
	PlatformWhatsapp  = Platform("whatsapp")
	PlatformSnapchat  = Platform("snapchat")
	PlatformTelegram  = Platform("telegram")
)

func (in Platform) IsValid() bool {
	switch in {
	case PlatformTwitter, PlatformInstagram, PlatformTiktok, PlatformFacebook,
		PlatformWhatsapp, PlatformSnapchat, PlatformTelegram:
		return true
	default:
		return false
	}
}

type MissionType string

const (
	MissionTypeEngage     = MissionType("engage")
	MissionTypeContent    = MissionType("content")
	MissionTypeAmbassador = MissionType("ambassador")
)

func (in MissionType) IsValid() bool {
	switch in {
	case MissionTypeEngage, MissionTypeContent, MissionTypeAmbassador:
		return true
	default:
		return false
	}
}

type MissionModel string

const (
	MissionModelFixed = MissionModel("fixed")
	MissionModelDegen = MissionModel("degen")
)

func (in MissionModel) IsValid() bool {
	return in == MissionModelFixed || in == MissionModelDegen
}

func (in MissionModel) Is(target MissionModel) bool {
	return in == target
}

type TargetProfile string

const (
	TargetProfileAll     = TargetProfile("all")
	TargetProfilePremium = TargetProfile("premium")
)

func (in TargetProfile) IsValid() bool {
	return in == TargetProfileAll || in == TargetProfilePremium
}

// taskHonors is the static task value catalog, loaded once at process start.
// Honor values are per accepted participant, before the platform fee.
var taskHonors = map[Platform]map[MissionType]map[string]int64{
	PlatformTwitter: {
		MissionTypeEngage: {
			"like":    20,
			"retweet": 300,
			"comment": 150,
			"quote":   200,
			"follow":  250,
		},
		MissionTypeContent: {
			"meme":        350,
			"thread":      500,
			"article":     800,
			"videoreview": 1200,
			"infographic": 600,
		},
		MissionTypeAmbassador: {
			"pfp":               250,
			"name_bio_keywords": 200,
			"pinned_tweet":      500,
			"poll":              100,
			"spaces":            800,
			"community_raid":    400,
		},
	},
	PlatformInstagram: {
		MissionTypeEngage: {
			"like":         20,
			"comment":      150,
			"follow":       250,
			"story_repost": 200,
		},
		MissionTypeContent: {
			"feed_post": 300,
			"reel":      500,
			"carousel":  400,
		},
		MissionTypeAmbassador: {
			"bio_link":        200,
			"story_highlight": 300,
			"tag_business":    150,
		},
	},
	PlatformTiktok: {
		MissionTypeEngage: {
			"like":    20,
			"comment": 150,
			"repost":  200,
			"follow":  250,
		},
		MissionTypeContent: {
			"skit":           400,
			"duet":           500,
			"stitch":         450,
			"product_review": 600,
		},
		MissionTypeAmbassador: {
			"hashtag_challenge": 400,
			"branded_effect":    500,
		},
	},
	PlatformFacebook: {
		MissionTypeEngage: {
			"like":       20,
			"comment":    150,
			"follow":     250,
			"share_post": 200,
		},
		MissionTypeContent: {
			"group_post":  300,
			"video":       500,
			"live_stream": 800,
		},
		MissionTypeAmbassador: {
			"page_follow": 150,
			"event_share": 200,
		},
	},
	PlatformWhatsapp: {
		MissionTypeEngage: {
			"status_50_views":  300,
			"status_100_views": 500,
		},
		MissionTypeContent: {
			"flyer_clip_status": 200,
			"broadcast_message": 150,
		},
		MissionTypeAmbassador: {
			"keyword_in_about": 100,
		},
	},
	PlatformSnapchat: {
		MissionTypeEngage: {
			"story_post":  200,
			"snap_repost": 150,
		},
		MissionTypeContent: {
			"branded_snap":   300,
			"spotlight_clip": 500,
		},
		MissionTypeAmbassador: {
			"bitmoji_outfit": 200,
			"filter_lens":    350,
		},
	},
	PlatformTelegram: {
		MissionTypeEngage: {
			"join_channel":  150,
			"react_to_post": 20,
			"share_post":    100,
		},
		MissionTypeContent: {
			"channel_post":   300,
			"pinned_message": 200,
		},
		MissionTypeAmbassador: {
			"group_admin":   500,
			"bot_promotion": 250,
		},
	},
}

// HonorsFor returns the honor value for a task under the given platform and
// mission type. Zero means the task is not recognized for that combination,
// callers that need strictness must validate the request first.
func HonorsFor(platform Platform, missionType MissionType, task string) int64 {
	types, ok := taskHonors[platform]
	if !ok {
		return 0
	}
	tasks, ok := types[missionType]
	if !ok {
		return 0
	}
	return tasks[task]
}

// TasksFor returns the recognized task identifiers for a platform and mission
// type, sorted for deterministic iteration.
func TasksFor(platform Platform, missionType MissionType) []string {
	types, ok := taskHonors[platform]
	if !ok {
		return nil
	}
	tasks, ok := types[missionType]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(tasks))
	for name := range tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SumHonors sums HonorsFor over the task list. Unrecognized tasks contribute
// zero rather than failing.
func SumHonors(platform Platform, missionType MissionType, tasks []string) int64 {
	var sum int64
	for _, task := range tasks {
		sum += HonorsFor(platform, missionType, task)
	}
	return sum
}
