package animation

// CatalogBuilderOption is a functional option for configuring a Catalog during construction.
type CatalogBuilderOption func(*catalog)

// WithPolicy is an option builder that adds or replaces the policy for a single clip.
//
// Parameters:
//   - name: the clip name
//   - loopForever: whether the clip is re-triggered when it finishes
//   - crossFade: the fade duration in seconds used when the clip starts
//
// Returns:
//   - CatalogBuilderOption: a function that applies the policy to a catalog
func WithPolicy(name string, loopForever bool, crossFade float32) CatalogBuilderOption {
	return WithPolicies(AnimationPolicy{Name: name, LoopForever: loopForever, CrossFadeDuration: crossFade})
}

// WithPolicies is an option builder that adds or replaces a batch of policies.
//
// Parameters:
//   - policies: the policies to add
//
// Returns:
//   - CatalogBuilderOption: a function that applies the policies to a catalog
func WithPolicies(policies ...AnimationPolicy) CatalogBuilderOption {
	return func(c *catalog) {
		for _, p := range policies {
			if _, ok := c.policies[p.Name]; !ok {
				c.order = append(c.order, p.Name)
			}
			c.policies[p.Name] = p
		}
	}
}

// WithIdleAnimations is an option builder that sets the idle set.
//
// Parameters:
//   - names: the interchangeable resting clips
//
// Returns:
//   - CatalogBuilderOption: a function that applies the idle set to a catalog
func WithIdleAnimations(names ...string) CatalogBuilderOption {
	return func(c *catalog) {
		c.idle = append([]string(nil), names...)
	}
}

// WithTalkingAnimations is an option builder that sets the talking set.
//
// Parameters:
//   - names: the interchangeable speaking clips
//
// Returns:
//   - CatalogBuilderOption: a function that applies the talking set to a catalog
func WithTalkingAnimations(names ...string) CatalogBuilderOption {
	return func(c *catalog) {
		c.talking = append([]string(nil), names...)
	}
}

// WithDefaultCrossFade is an option builder that sets the fade duration for clips without a policy.
//
// Parameters:
//   - seconds: the default fade duration
//
// Returns:
//   - CatalogBuilderOption: a function that applies the default to a catalog
func WithDefaultCrossFade(seconds float32) CatalogBuilderOption {
	return func(c *catalog) {
		c.defaultCrossFade = seconds
	}
}
