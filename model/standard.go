package model

// StandardGenres is the shared genre ordering for genre weight vectors.
// Index i of a FeatureVector's GenreWeights refers to StandardGenres[i].
var StandardGenres = []string{
	"Action",
	"Adventure",
	"RPG",
	"Strategy",
	"Puzzle",
	"Platform",
	"Shooter",
	"Fighting",
	"Racing",
	"Sports",
	"Simulation",
	"Horror",
}

// StandardMechanics is the shared mechanic ordering for mechanic flag vectors.
// Index i of a FeatureVector's MechanicFlags refers to StandardMechanics[i].
var StandardMechanics = []string{
	"Combat",
	"Exploration",
	"Puzzle Solving",
	"Platform Jumping",
	"Resource Management",
	"Character Progression",
	"Story Choices",
	"Time Pressure",
	"Collection",
	"Stealth",
	"Multiplayer",
	"Turn-Based",
	"Real-Time",
	"Physics-Based",
	"Procedural Generation",
}

// GenreIndex returns the position of a genre in StandardGenres, or -1 if unknown
func GenreIndex(genre string) int {
	for i, g := range StandardGenres {
		if g == genre {
			return i
		}
	}
	return -1
}

// MechanicIndex returns the position of a mechanic in StandardMechanics, or -1 if unknown
func MechanicIndex(mechanic string) int {
	for i, m := range StandardMechanics {
		if m == mechanic {
			return i
		}
	}
	return -1
}
