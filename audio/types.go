package audio

// Cue identifies a sound effect triggered by a game or UI event
type Cue int

const (
	CueLock     Cue = iota // Block piece locked
	CueClear               // Lines cleared
	CueGameOver            // Block spawn collided
	CueCardPlay            // Card played
	CueWin                 // Card run won
	CueLose                // Card run lost
	CueChoice              // Story choice taken
	CueShard               // Signal shard collected
	CueTheme               // Theme changed
	cueCount
)

var cueNames = [cueCount]string{
	"lock", "clear", "game-over", "card-play", "win", "lose", "choice", "shard", "theme",
}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Player plays cues; implementations never block the caller
type Player interface {
	Play(c Cue)
	Close()
}

// Silent is a Player that discards every cue
type Silent struct{}

func (Silent) Play(Cue) {}
func (Silent) Close() {}
