package moods

import "strings"

// Threshold is the minimum affinity score a venue needs to show up in a mood search.
const Threshold = 0.7

// Venue moods: what a venue can be tagged with and scored against.
var Venue = []string{
	"family", "foodie", "romantic", "nature", "lonely", "club",
	"motivation", "movies", "library", "therapy", "gym", "shopping",
}

// Review moods: the mood a visitor was in.
var Review = []string{"family", "foodie", "romantic", "nature", "lonely", "club"}

// Favorite moods a user can pin on their profile.
var Favorite = []string{
	"family", "foodie", "romantic", "nature", "lonely", "club",
	"happy", "sad", "motivated", "chill", "party",
}

// Guide is the "what to do / what to seek" card shown with a mood search.
type Guide struct {
	Title      string `json:"title,omitempty"`
	WhatToDo   string `json:"whatToDo,omitempty"`
	WhatToSeek string `json:"whatToSeek,omitempty"`
}

var guides = map[string]Guide{
	"family": {
		Title:      "Family Mode",
		WhatToDo:   "Engage in group activities, share a big meal, let the kids lead some choices, play games together.",
		WhatToSeek: "Look for shared laughter, child-friendly menus, open spaces, and moments that create memories.",
	},
	"foodie": {
		Title:      "Foodie Mode",
		WhatToDo:   "Ask about the chef's specials, explore unfamiliar dishes, try the tasting menu, photograph the presentation.",
		WhatToSeek: "Seek authentic flavors, unique ingredients, the story behind each dish, and a menu that surprises you.",
	},
	"romantic": {
		Title:      "Romantic Mode",
		WhatToDo:   "Order sharing plates, linger over dessert, take a walk after dinner, put your phone away.",
		WhatToSeek: "Look for dim lighting, quiet corners, a view, and conversation that goes deeper than usual.",
	},
	"nature": {
		Title:      "Nature Mode",
		WhatToDo:   "Walk slowly, breathe deeply, observe your surroundings, unplug from your phone for at least 20 minutes.",
		WhatToSeek: "Seek stillness, the sound of wind or water, green spaces, and the feeling of mental restoration.",
	},
	"lonely": {
		Title:      "Comfort Mode",
		WhatToDo:   "Settle into a cozy corner, order something warm, journal or read, allow yourself to simply be.",
		WhatToSeek: "Look for warmth, a welcoming atmosphere, comfort food, and the quiet companionship of a busy but unhurried place.",
	},
	"club": {
		Title:      "Club Mode",
		WhatToDo:   "Dance, explore the cocktail menu, start conversations with strangers, let go of the plan.",
		WhatToSeek: "Seek high energy, great music, spontaneous connections, and the feeling of being fully alive in the moment.",
	},
}

// GuideFor returns the guide for mood, or an empty Guide for moods without one.
func GuideFor(mood string) Guide {
	return guides[Normalize(mood)]
}

func Normalize(mood string) string {
	return strings.ToLower(strings.TrimSpace(mood))
}

func IsVenueMood(mood string) bool    { return contains(Venue, mood) }
func IsReviewMood(mood string) bool   { return contains(Review, mood) }
func IsFavoriteMood(mood string) bool { return contains(Favorite, mood) }

func contains(set []string, mood string) bool {
	for _, m := range set {
		if m == mood {
			return true
		}
	}
	return false
}
