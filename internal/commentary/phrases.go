package commentary

// Phrase banks for the courtside caller. Templates use %s for a player
// or team name and %d for point values. Banks are picked from at
// random with a no-immediate-repeat rule, so even short matches do not
// sound canned.

var hypeSmallPhrases = []string{
	"Nice!",
	"There it is!",
	"Count it!",
	"Smooth!",
}

var hypeMidPhrases = []string{
	"Oh, that's pretty!",
	"What a move!",
	"Bang!",
	"Filthy!",
}

var hypeBigPhrases = []string{
	"Are you kidding me?!",
	"Unbelievable!",
	"Call the fire department!",
	"That one's going on the highlight reel!",
}

// action phrases take the scorer then the team.
var actionOnePhrases = []string{
	"%s puts one in for %s.",
	"%s gets the bucket for %s.",
	"%s finishes at the rim for %s.",
}

var actionTwoPhrases = []string{
	"%s drains a deep one for %s!",
	"%s splashes it from way out for %s!",
	"%s pulls up and buries it for %s!",
}

var actionBigPhrases = []string{
	"%s piles them on for %s!",
	"%s is cooking for %s right now!",
	"%s just took the game over for %s!",
}

var leaderSolePhrases = []string{
	"%s leading all scorers.",
	"%s out in front of everybody.",
	"%s on top of the charts.",
}

var leaderTiedPhrases = []string{
	"%s tied at the top.",
	"%s sharing the scoring lead.",
}

var gapTiePhrases = []string{
	"We're all square.",
	"Dead even out there.",
	"Nothing between these two sides.",
}

// gap phrases take the leading team.
var gapClosePhrases = []string{
	"%s up by a hair.",
	"%s clinging to a slim lead.",
	"%s barely in front.",
}

var gapMidPhrases = []string{
	"%s starting to pull away.",
	"%s building some breathing room.",
	"%s in control right now.",
}

var gapBlowoutPhrases = []string{
	"%s running away with this one!",
	"%s turning it into a clinic!",
	"%s making it look easy!",
}

var jabPhrases = []string{
	"Meanwhile %s is still warming up.",
	"%s, you planning on joining us today?",
	"Still waiting on %s to get on the board.",
	"%s out there collecting fresh air.",
}

var scorelinePhrases = []string{
	"It's %d to %d.",
	"Scoreboard says %d to %d.",
	"We've got %d playing %d.",
}

var scorelineTiePhrases = []string{
	"We're knotted at %d apiece.",
	"All tied up at %d.",
}

var matchStartPhrases = []string{
	"Ball's up, let's run it!",
	"Here we go, first to fourteen!",
	"Game on, bring the energy!",
}

var matchEndWinPhrases = []string{
	"That's the ballgame! %s takes it, %d to %d!",
	"And it's over! %s walks away with the win, %d to %d!",
	"Final whistle! %s gets it done, %d to %d!",
}

var matchEndTiePhrases = []string{
	"That's time! We finish all square at %d apiece!",
	"The clock says it's over, dead even at %d apiece!",
}

var mvpPhrases = []string{
	"MVP honors go to %s!",
	"Give it up for %s, player of the match!",
	"Tonight belonged to %s!",
}

var signOffPhrases = []string{
	"Good hustle out there, see you next run.",
	"That's a wrap from courtside.",
	"Get some water, we go again soon.",
}
