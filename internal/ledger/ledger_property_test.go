package ledger

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"stock-advisor/internal/models"
)

// Property: For buy-only histories the derived position is insertion-order
// independent. Shares and cost are sums over the trades, so any permutation
// of the same trades replays to the same position.
func TestProperty_BuyOnlyOrderIndependence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("shuffled buys replay to the same position", prop.ForAll(
		func(prices []float64, seed int64) bool {
			if len(prices) == 0 {
				return true
			}

			trades := make([]models.Trade, 0, len(prices))
			for i, price := range prices {
				trades = append(trades, models.Trade{
					Date:       time.Date(2026, time.January, 1+i, 0, 0, 0, 0, time.UTC),
					Action:     models.ActionBuy,
					Price:      price,
					Shares:     1 + i%50,
					Commission: 1.0,
				})
			}

			shuffled := make([]models.Trade, len(trades))
			copy(shuffled, trades)
			rng := rand.New(rand.NewSource(seed))
			rng.Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})

			l1 := New("A")
			for _, tr := range trades {
				if err := l1.Append(tr); err != nil {
					return false
				}
			}
			l2 := New("A")
			for _, tr := range shuffled {
				if err := l2.Append(tr); err != nil {
					return false
				}
			}

			p1, p2 := l1.Position(), l2.Position()
			return p1.Shares == p2.Shares &&
				math.Abs(p1.Cost-p2.Cost) < 1e-6 &&
				math.Abs(p1.Commission-p2.Commission) < 1e-6
		},
		gen.SliceOf(gen.Float64Range(0.01, 1000.0)),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

// Property: A partial sell leaves the average cost of the remaining shares
// unchanged, because cost shrinks by exactly the fraction of shares sold.
func TestProperty_PartialSellPreservesAverageCost(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("average cost stable across partial sells", prop.ForAll(
		func(price float64, shares int, soldFraction float64) bool {
			sold := int(float64(shares) * soldFraction)
			if sold <= 0 || sold >= shares {
				return true
			}

			l := New("A")
			if err := l.Append(models.Trade{
				Date:   time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
				Action: models.ActionBuy,
				Price:  price,
				Shares: shares,
			}); err != nil {
				return false
			}
			before := l.Position().AverageCost()

			if err := l.Append(models.Trade{
				Date:   time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC),
				Action: models.ActionSell,
				Price:  price * 1.1,
				Shares: sold,
			}); err != nil {
				return false
			}
			after := l.Position().AverageCost()

			return math.Abs(before-after) < 1e-6
		},
		gen.Float64Range(0.01, 1000.0),
		gen.IntRange(2, 10000),
		gen.Float64Range(0.01, 0.99),
	))

	properties.TestingRun(t)
}
