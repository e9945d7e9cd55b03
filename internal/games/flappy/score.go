package flappy

// ScoreKeeper tracks the running score and the process-lifetime best.
type ScoreKeeper struct {
	score int
	best  int
}

// RegisterPass adds one point.
func (k *ScoreKeeper) RegisterPass() {
	k.score++
}

// Finalize folds the current score into the best score.
// Called once per Running to GameOver transition.
func (k *ScoreKeeper) Finalize() {
	if k.score > k.best {
		k.best = k.score
	}
}

// Reset clears the running score. The best score is kept.
func (k *ScoreKeeper) Reset() {
	k.score = 0
}

// Score returns the running score.
func (k *ScoreKeeper) Score() int {
	return k.score
}

// Best returns the best finalized score.
func (k *ScoreKeeper) Best() int {
	return k.best
}
