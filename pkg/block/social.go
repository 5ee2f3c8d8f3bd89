package block

// Network is a social network the builder has an icon for
type Network struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var networkOrder = []Network{
	{ID: "facebook", Name: "Facebook", Icon: "social/facebook.png"},
	{ID: "instagram", Name: "Instagram", Icon: "social/instagram.png"},
	{ID: "x", Name: "X", Icon: "social/x.png"},
	{ID: "linkedin", Name: "LinkedIn", Icon: "social/linkedin.png"},
	{ID: "youtube", Name: "YouTube", Icon: "social/youtube.png"},
	{ID: "tiktok", Name: "TikTok", Icon: "social/tiktok.png"},
	{ID: "pinterest", Name: "Pinterest", Icon: "social/pinterest.png"},
	{ID: "google", Name: "Google Reviews", Icon: "social/google.png"},
	{ID: "yelp", Name: "Yelp", Icon: "social/yelp.png"},
}

var networks = func() map[string]Network {
	m := make(map[string]Network, len(networkOrder))
	for _, n := range networkOrder {
		m[n.ID] = n
	}
	return m
}()

// KnownNetworks lists supported networks in picker order
func KnownNetworks() []Network {
	out := make([]Network, len(networkOrder))
	copy(out, networkOrder)
	return out
}

func LookupNetwork(id string) (Network, bool) {
	n, ok := networks[id]
	return n, ok
}

// FilterNetworks splits ids into known and unknown, preserving order
func FilterNetworks(ids []string) (known []Network, unknown []string) {
	for _, id := range ids {
		if n, ok := networks[id]; ok {
			known = append(known, n)
			continue
		}
		unknown = append(unknown, id)
	}
	return known, unknown
}
