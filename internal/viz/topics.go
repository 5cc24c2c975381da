package viz

// Topic is an inspector entry explaining one observable.
type Topic struct {
	ID          string
	Label       string
	Explanation string
	Title       string
	Hint        string
}

var Topics = []Topic{
	{
		ID:          "horizon",
		Label:       "Event horizon",
		Explanation: "The boundary you can only cross inwards. Not even light escapes from inside it.",
		Title:       "Event horizon and spin",
		Hint:        "Raise the spin a* and watch the horizon and the structures around it shrink.",
	},
	{
		ID:          "isco",
		Label:       "ISCO",
		Explanation: "The innermost stable circular orbit. Closer to the hole means more energy released before matter falls in.",
		Title:       "ISCO and the inner disk edge",
		Hint:        "Change spin and accretion to see the inner edge and the brightness move.",
	},
	{
		ID:          "luminosity",
		Label:       "Eddington luminosity",
		Explanation: "The luminosity at which radiation pressure balances gravity; the natural scale for disk brightness.",
		Title:       "Luminosity and accretion state",
		Hint:        "Use the accretion rate to move L/L_Edd between faint and bright states.",
	},
}
