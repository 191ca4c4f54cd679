package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resto-backend/services"
)

var uploadPrefixes = map[string]string{
	"hero":           services.PrefixHero,
	"about":          services.PrefixAbout,
	"gallery":        services.PrefixGallery,
	"menu":           services.PrefixMenu,
	"offers":         services.PrefixOffers,
}

// UploadAsset stores an admin-uploaded image under the feature's prefix and
// returns its public URL; the admin then saves that URL on the record. The
// two steps are not atomic, so an abandoned form can leave an orphaned file.
func UploadAsset(c *gin.Context) {
	prefix, ok := uploadPrefixes[c.Query("prefix")]
	if !ok {
		respondError(c, http.StatusBadRequest, "error.invalidPrefix", "unknown upload prefix")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "error.missingFile", "file is required")
		return
	}

	url, err := services.SaveUpload(fh, prefix)
	if err != nil {
		respondError(c, http.StatusBadRequest, "error.uploadFailed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
