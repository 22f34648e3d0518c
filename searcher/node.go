package searcher

// node is a passive record of the search tree. Expansion moves actions from untried
// into children; backpropagation updates wins and visits.
type node[A comparable] struct {
	parent   *node[A]
	action   A // Action played from parent to reach this node
	player   Player
	children map[A]*node[A]
	order    []A // Expanded actions, in expansion order
	untried  []A
	wins     float64
	visits   int
}

func newNode[A comparable](parent *node[A], action A, player Player, actions []A) *node[A] {
	untried := make([]A, len(actions))
	copy(untried, actions)

	return &node[A]{
		parent:   parent,
		action:   action,
		player:   player,
		children: make(map[A]*node[A], len(actions)),
		untried:  untried,
	}
}

func (n *node[A]) isFullyExpanded() bool {
	return len(n.untried) == 0
}

// addChild expands the untried action at index i
func (n *node[A]) addChild(i int, player Player, actions []A) *node[A] {
	action := n.untried[i]
	last := len(n.untried) - 1
	n.untried[i] = n.untried[last]
	n.untried = n.untried[:last]

	child := newNode(n, action, player, actions)
	n.children[action] = child
	n.order = append(n.order, action)
	return child
}

// update records one visit with the reward of the player to move and returns the parent
func (n *node[A]) update(reward float64) *node[A] {
	n.wins += reward
	n.visits++
	return n.parent
}

// mean returns the average reward of the node from the perspective of player
func (n *node[A]) mean(player Player) float64 {
	if n.visits == 0 {
		return 0
	}
	mean := n.wins / float64(n.visits)
	if player != n.player {
		return -mean
	}
	return mean
}

func (n *node[A]) size() int {
	count := 0
	stack := []*node[A]{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		for _, action := range top.order {
			stack = append(stack, top.children[action])
		}
	}
	return count
}
