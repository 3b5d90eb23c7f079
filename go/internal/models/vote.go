package models

// Vote outcomes. The backend tallies raw integers, so these are ints
// rather than a bool.
const (
	VotePass  = 0
	VoteFavor = 1
)

// VoteBatch maps costume IDs to a binary outcome for every costume visible
// to a player. Built once at submission time; never partially sent.
type VoteBatch map[string]int

// BuildVoteBatch assembles a complete batch over the full costume sequence,
// defaulting any undecided costume to VotePass.
func BuildVoteBatch(costumes []Costume, decisions map[string]int) VoteBatch {
	batch := make(VoteBatch, len(costumes))
	for _, costume := range costumes {
		outcome, ok := decisions[costume.CostumeID]
		if !ok {
			outcome = VotePass
		}
		batch[costume.CostumeID] = outcome
	}
	return batch
}
