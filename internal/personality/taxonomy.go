// Package personality holds the fixed reading-personality taxonomy.
//
// The taxonomy is an ordered list: the classification oracle answers with an
// index into it, so reordering or removing entries changes the meaning of
// stored or cached results. Append new archetypes at the end.
package personality

// Entry is one reading-taste archetype.
type Entry struct {
	Personality string `json:"personality"`
	Description string `json:"description"`
}

// Default is the built-in taxonomy presented to the classification oracle.
var Default = []Entry{
	{
		Personality: "The Escapist",
		Description: "You read to leave this world behind. Sprawling fantasy realms, distant galaxies, and second-world epics are where you feel most at home.",
	},
	{
		Personality: "The Scholar",
		Description: "Non-fiction is your natural habitat. History, science, and big-idea books stack up on your shelf, and every one leaves you knowing something you didn't before.",
	},
	{
		Personality: "The Detective",
		Description: "You read for the puzzle. Mysteries, thrillers, and anything with a twist keep you turning pages long past midnight, always one clue ahead of the narrator.",
	},
	{
		Personality: "The Romantic",
		Description: "Love stories in every shade, from slow burns to second chances. You read with your whole heart and you're not sorry about it.",
	},
	{
		Personality: "The Time Traveler",
		Description: "Historical fiction and period sagas pull you backwards through the centuries. The past is never really past when you're reading.",
	},
	{
		Personality: "The Night Owl",
		Description: "Horror, gothic tales, and the uncanny. You like your fiction with teeth, and the later the hour the better it reads.",
	},
	{
		Personality: "The Self-Builder",
		Description: "Self-improvement, psychology, and memoirs of people who figured something out. Every book is a tool and you're always renovating.",
	},
	{
		Personality: "The Literary Wanderer",
		Description: "Character-driven literary fiction, translated novels, quiet books that end ambiguously. You read for the sentences as much as the story.",
	},
	{
		Personality: "The Adventurer",
		Description: "Action, survival stories, and true tales from the edge of the map. If a book has a mountain, a shipwreck, or a heist in it, you're in.",
	},
	{
		Personality: "The Dreamer",
		Description: "Young adult, coming-of-age, and stories about becoming someone. You read to remember what it feels like when everything is still possible.",
	},
}
