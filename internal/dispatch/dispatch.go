// Package dispatch resolves a sequence of command tokens against a static
// tree of named command groups, descending to an executable leaf, producing a
// help listing, or reporting a structured failure. It never prints and never
// terminates the process; rendering and exit codes belong to the caller.
package dispatch

// HelpToken is the reserved literal that stops descent and yields a help
// listing. It is only special while resolution is still inside a branch; once
// a leaf is reached it travels to the handler like any other argument.
const HelpToken = "help"

// Handler executes a resolved leaf command with the arguments left over
// after descent.
type Handler func(arguments []string) error

// Node is one vertex of the command tree: either a Branch or a Leaf, never
// both. Trees are built once at startup and are never mutated afterwards, so
// concurrent dispatch over a shared tree needs no coordination.
type Node interface {
	commandNode()
}

// Leaf is an executable command carrying its handler and help metadata.
type Leaf struct {
	handler     Handler
	usage       string
	description string
}

// NewLeaf constructs an executable leaf node.
func NewLeaf(handler Handler, usage string, description string) *Leaf {
	return &Leaf{handler: handler, usage: usage, description: description}
}

func (leaf *Leaf) commandNode() {}

// Branch groups named child nodes. Child order is declaration order and
// determines help listing order; names must be unique within a branch.
type Branch struct {
	children []Child
}

// Child pairs a command name with its node.
type Child struct {
	Name string
	Node Node
}

// NewBranch constructs a branch from its ordered children.
func NewBranch(children ...Child) *Branch {
	return &Branch{children: children}
}

func (branch *Branch) commandNode() {}

// ChildNames returns the names of the branch's children in declaration order.
func (branch *Branch) ChildNames() []string {
	names := make([]string, 0, len(branch.children))
	for _, branchChild := range branch.children {
		names = append(names, branchChild.Name)
	}
	return names
}

func (branch *Branch) lookup(name string) (Node, bool) {
	for _, branchChild := range branch.children {
		if branchChild.Name == name {
			return branchChild.Node, true
		}
	}
	return nil, false
}

// HelpEntry is the usage and description of one reachable leaf, derived on
// demand by flattening a branch.
type HelpEntry struct {
	Usage       string
	Description string
}

// HelpEntries flattens every leaf reachable from the branch depth-first,
// preserving each branch's child order. Every reachable leaf appears exactly
// once because the tree is finite and acyclic.
func (branch *Branch) HelpEntries() []HelpEntry {
	entries := make([]HelpEntry, 0, len(branch.children))
	for _, branchChild := range branch.children {
		switch childNode := branchChild.Node.(type) {
		case *Leaf:
			entries = append(entries, HelpEntry{Usage: childNode.usage, Description: childNode.description})
		case *Branch:
			entries = append(entries, childNode.HelpEntries()...)
		}
	}
	return entries
}

// OutcomeKind identifies which variant of Outcome a dispatch produced.
type OutcomeKind int

const (
	// OutcomeInvoked means descent reached a leaf and its handler ran.
	OutcomeInvoked OutcomeKind = iota
	// OutcomeHelpPrinted means the reserved help token stopped descent.
	OutcomeHelpPrinted
	// OutcomeFailure means descent could not resolve a leaf.
	OutcomeFailure
)

// FailureKind classifies a dispatch failure.
type FailureKind int

const (
	// FailureMissingArgument means a branch was reached with no tokens left.
	FailureMissingArgument FailureKind = iota
	// FailureUnknownCommand means a token matched no child of the branch.
	FailureUnknownCommand
)

// Failure describes why descent stopped short of a leaf. ValidNames lists the
// children of the failing branch for diagnostics; Suggestion carries the
// closest child name when an unknown token looks like a typo.
type Failure struct {
	Kind       FailureKind
	Token      string
	ValidNames []string
	Suggestion string
}

// Outcome is the result of one dispatch. Exactly the fields belonging to
// Kind are populated.
type Outcome struct {
	Kind        OutcomeKind
	Arguments   []string
	HandlerErr  error
	HelpEntries []HelpEntry
	Failure     *Failure
}

// Dispatch walks the tree using the argument sequence. Descent is iterative:
// each matched token is consumed and resolution continues at the named child
// until a leaf is invoked with the remaining arguments, the help token is
// intercepted at a branch, or a failure is reported. A root that is itself a
// leaf dispatches immediately with the full argument list.
func Dispatch(root Node, arguments []string) Outcome {
	currentNode := root
	remainingArguments := arguments
	for {
		switch node := currentNode.(type) {
		case *Leaf:
			return Outcome{
				Kind:       OutcomeInvoked,
				Arguments:  remainingArguments,
				HandlerErr: node.handler(remainingArguments),
			}
		case *Branch:
			if len(remainingArguments) == 0 {
				return Outcome{
					Kind:    OutcomeFailure,
					Failure: &Failure{Kind: FailureMissingArgument, ValidNames: node.ChildNames()},
				}
			}
			nextToken := remainingArguments[0]
			if nextToken == HelpToken {
				return Outcome{Kind: OutcomeHelpPrinted, HelpEntries: node.HelpEntries()}
			}
			childNode, childFound := node.lookup(nextToken)
			if !childFound {
				return Outcome{
					Kind: OutcomeFailure,
					Failure: &Failure{
						Kind:       FailureUnknownCommand,
						Token:      nextToken,
						ValidNames: node.ChildNames(),
						Suggestion: suggestName(nextToken, node.ChildNames()),
					},
				}
			}
			currentNode = childNode
			remainingArguments = remainingArguments[1:]
		default:
			panic("dispatch: node is neither Branch nor Leaf")
		}
	}
}
