package ecs

// Each1 iterates the live entities of a snapshot, handing out their A payload.
// Entities that lost A after the snapshot are skipped.
func Each1[A any](w *World, entities []EntityID, fn func(EntityID, *A)) {
	sa := Store[A](w.registry)
	for id := range w.Live(entities) {
		if a, ok := sa.Get(id); ok {
			fn(id, a)
		}
	}
}

// Each2 iterates the live entities of a snapshot that still have both A and B.
func Each2[A, B any](w *World, entities []EntityID, fn func(EntityID, *A, *B)) {
	sa, sb := Store[A](w.registry), Store[B](w.registry)
	for id := range w.Live(entities) {
		a, ok := sa.Get(id)
		if !ok {
			continue
		}
		if b, ok := sb.Get(id); ok {
			fn(id, a, b)
		}
	}
}

// Each3 iterates the live entities of a snapshot that still have A, B and C.
func Each3[A, B, C any](w *World, entities []EntityID, fn func(EntityID, *A, *B, *C)) {
	sa, sb, sc := Store[A](w.registry), Store[B](w.registry), Store[C](w.registry)
	for id := range w.Live(entities) {
		a, ok := sa.Get(id)
		if !ok {
			continue
		}
		b, ok := sb.Get(id)
		if !ok {
			continue
		}
		if c, ok := sc.Get(id); ok {
			fn(id, a, b, c)
		}
	}
}
