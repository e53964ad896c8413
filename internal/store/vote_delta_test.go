package store

import "testing"

// TestVoteDeltas checks the full (old,new) transition table against the
// invariant that counters always track ledger row counts.
func TestVoteDeltas(t *testing.T) {
	cases := []struct {
		old, new   int
		dUp, dDown int
	}{
		{0, 0, 0, 0},
		{0, 1, 1, 0},
		{0, -1, 0, 1},
		{1, 0, -1, 0},
		{1, 1, 0, 0},
		{1, -1, -1, 1},
		{-1, 0, 0, -1},
		{-1, 1, 1, -1},
		{-1, -1, 0, 0},
	}

	for _, tc := range cases {
		dUp, dDown := voteDeltas(tc.old, tc.new)
		if dUp != tc.dUp || dDown != tc.dDown {
			t.Errorf("voteDeltas(%d, %d) = (%d, %d), want (%d, %d)",
				tc.old, tc.new, dUp, dDown, tc.dUp, tc.dDown)
		}
	}
}

// TestVoteDeltasRoundTrip verifies that every vote-then-clear sequence nets
// to zero, so counters return exactly to their pre-vote values.
func TestVoteDeltasRoundTrip(t *testing.T) {
	for _, v := range []int{-1, 1} {
		up1, down1 := voteDeltas(0, v)
		up2, down2 := voteDeltas(v, 0)
		if up1+up2 != 0 || down1+down2 != 0 {
			t.Errorf("vote %d then clear drifts: up %d, down %d", v, up1+up2, down1+down2)
		}
	}
}
