package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ensei.io/mission-engine/internal/catalog"
)

// GetCatalog enumerates the static pricing tables so creator clients can
// build mission forms without hardcoding them: recognized tasks per platform
// and mission type, the degen duration presets, and the audience-size labels
// with the durations they resolve to.
func GetCatalog(ctx *gin.Context) {
	platforms := []catalog.Platform{
		catalog.PlatformTwitter, catalog.PlatformInstagram, catalog.PlatformTiktok,
		catalog.PlatformFacebook, catalog.PlatformWhatsapp, catalog.PlatformSnapchat,
		catalog.PlatformTelegram,
	}
	missionTypes := []catalog.MissionType{
		catalog.MissionTypeEngage, catalog.MissionTypeContent, catalog.MissionTypeAmbassador,
	}
	tasks := make(map[catalog.Platform]map[catalog.MissionType][]string, len(platforms))
	for _, platform := range platforms {
		tasks[platform] = make(map[catalog.MissionType][]string, len(missionTypes))
		for _, missionType := range missionTypes {
			tasks[platform][missionType] = catalog.TasksFor(platform, missionType)
		}
	}
	audiences := make(map[string]int)
	for _, label := range catalog.AudienceLabels() {
		hours, _ := catalog.HoursForAudience(label)
		audiences[label] = hours
	}
	ctx.JSON(http.StatusOK, map[string]interface{}{
		"honors_per_usd": catalog.HonorsPerUSD,
		"tasks":          tasks,
		"degen_presets":  catalog.Presets(),
		"audiences":      audiences,
	})
}
