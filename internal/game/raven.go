package game

// stepRaven advances the raven one turn. With mushrooms on the board it
// closes in on the nearest one, stepping on both axes at once, so it
// moves diagonally when the target is offset on both. With nothing to
// guard it drifts one cell in a random legal direction.
func (r *Round) stepRaven() {
	if target, ok := r.nearestMushroom(); ok {
		r.Raven.X += sign(target.X - r.Raven.X)
		r.Raven.Y += sign(target.Y - r.Raven.Y)
		return
	}

	size := r.settings.BoardSize
	var steps []Position
	if r.Raven.X > 0 {
		steps = append(steps, Position{r.Raven.X - 1, r.Raven.Y})
	}
	if r.Raven.X < size-1 {
		steps = append(steps, Position{r.Raven.X + 1, r.Raven.Y})
	}
	if r.Raven.Y > 0 {
		steps = append(steps, Position{r.Raven.X, r.Raven.Y - 1})
	}
	if r.Raven.Y < size-1 {
		steps = append(steps, Position{r.Raven.X, r.Raven.Y + 1})
	}
	if len(steps) == 0 {
		return
	}
	r.Raven = steps[r.rng.Intn(len(steps))]
}

// nearestMushroom picks the mushroom with the smallest Manhattan
// distance to the raven. Ties keep the earliest spawned one.
func (r *Round) nearestMushroom() (Position, bool) {
	if len(r.Mushrooms) == 0 {
		return Position{}, false
	}
	target := r.Mushrooms[0]
	best := r.Raven.Manhattan(target)
	for _, m := range r.Mushrooms[1:] {
		if d := r.Raven.Manhattan(m); d < best {
			target, best = m, d
		}
	}
	return target, true
}
