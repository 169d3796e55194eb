// Package version looks up the newest release and tells the user about it.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/ftag"
	"github.com/metafates/gache"
	"github.com/scrub-cli/scrub/filesystem"
	"github.com/scrub-cli/scrub/util"
	"github.com/scrub-cli/scrub/where"
)

// releasesURL is queried for the newest release tag.
var releasesURL = "https://api.github.com/repos/scrub-cli/scrub/releases/latest"

const (
	cacheLifetime = 48 * time.Hour
	fetchTimeout  = 5 * time.Second
)

// cacher is built on demand so that it follows the filesystem in use.
func cacher() *gache.Cache[string] {
	return gache.New[string](&gache.Options{
		Path:       filepath.Join(where.Cache(), "version.json"),
		Lifetime:   cacheLifetime,
		FileSystem: &filesystem.GacheFs{},
	})
}

// Latest returns the newest release, asking GitHub at most once per cache lifetime.
func Latest(ctx context.Context) (Semver, error) {
	cache := cacher()

	if cached, expired, err := cache.Get(); err == nil && !expired && cached != "" {
		return Parse(cached)
	}

	latest, err := fetch(ctx)
	if err != nil {
		return Semver{}, fault.Wrap(err,
			fctx.With(ctx, "url", releasesURL),
			ftag.With(ftag.Internal),
		)
	}

	_ = cache.Set(latest.String())
	return latest, nil
}

func fetch(ctx context.Context) (Semver, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releasesURL, nil)
	if err != nil {
		return Semver{}, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Semver{}, err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return Semver{}, fmt.Errorf("releases: unexpected status %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return Semver{}, fmt.Errorf("releases: %w", err)
	}

	return Parse(release.TagName)
}
