package main

import (
	"runtime"

	"github.com/remeh/sizedwaitgroup"
)

var allFacings = [4]string{faceNorth, faceSouth, faceEast, faceWest}

// precacheAvatars decodes every known avatar frame ahead of first draw so
// players never spend their first few frames invisible. Bounded by CPU count;
// the render path stays lazy for anything that slips through.
func precacheAvatars(world *worldState, cache *avatarFrameCache) {
	defs := world.avatarDefs()
	wg := sizedwaitgroup.New(runtime.NumCPU())
	for _, def := range defs {
		queueAvatarFrames(def, cache, &wg)
	}
	wg.Wait()
	logDebug("precached frames for %d avatars (%d cached)", len(defs), cache.size())
}

// precacheAvatar warms a single avatar, used when one player joins mid-game.
func precacheAvatar(def *avatarDefinition, cache *avatarFrameCache) {
	if def == nil {
		return
	}
	wg := sizedwaitgroup.New(runtime.NumCPU())
	queueAvatarFrames(def, cache, &wg)
	wg.Wait()
}

func queueAvatarFrames(def *avatarDefinition, cache *avatarFrameCache, wg *sizedwaitgroup.SizedWaitGroup) {
	for _, facing := range allFacings {
		stored := facing
		if stored == faceWest {
			stored = faceEast
		}
		for i := range def.Frames[stored] {
			wg.Add()
			go func(facing string, i int) {
				defer wg.Done()
				cache.warm(def, facing, i)
			}(facing, i)
		}
	}
}
