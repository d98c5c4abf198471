package catalog

import (
	"fmt"

	"github.com/shaiso/Simplify/internal/domain"
)

// Виды нарушений предусловий.
const (
	IssueOutsideFlow = "outside_flow"
	IssueOrderedLate = "ordered_late"
	IssueCycle       = "cycle"
)

// PreconditionIssue — нарушение предусловий шага внутри flow.
type PreconditionIssue struct {
	FlowID       string `json:"flow_id"`
	StepID       string `json:"step_id"`
	Precondition string `json:"precondition,omitempty"`
	Kind         string `json:"kind"`
}

// String возвращает описание нарушения для логов.
func (p PreconditionIssue) String() string {
	switch p.Kind {
	case IssueOutsideFlow:
		return fmt.Sprintf("%s: step %s requires %s which is not part of the flow", p.FlowID, p.StepID, p.Precondition)
	case IssueOrderedLate:
		return fmt.Sprintf("%s: step %s requires %s which comes later", p.FlowID, p.StepID, p.Precondition)
	default:
		return fmt.Sprintf("%s: step %s is part of a precondition cycle", p.FlowID, p.StepID)
	}
}

// stepNode — узел графа предусловий.
type stepNode struct {
	id         string
	order      int
	inDegree   int
	dependents []*stepNode
}

// stepGraph — граф предусловий шагов одного flow.
//
// Ребро a → b означает, что a указан в preconditions шага b.
type stepGraph struct {
	nodes map[string]*stepNode

	// refs — узлы в порядке ссылок flow.
	refs []*stepNode
}

// Preconditions возвращает step_id из поля preconditions документа шага.
// Нестроковые элементы пропускаются.
func Preconditions(step domain.Step) []string {
	raw, ok := step["preconditions"].([]any)
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			ids = append(ids, s)
		}
	}
	return ids
}

// CheckPreconditions проверяет предусловия шагов flow.
//
// steps — загруженные документы шагов (step_id → документ).
// isStep сообщает, есть ли в каталоге шаг с таким id: предусловия,
// которые не являются шагами каталога, считаются свободным текстом
// и не проверяются.
func CheckPreconditions(flow *domain.Flow, steps map[string]domain.Step, isStep func(string) bool) []PreconditionIssue {
	g := &stepGraph{nodes: make(map[string]*stepNode, len(flow.Steps))}
	for _, ref := range flow.Steps {
		if _, dup := g.nodes[ref.StepID]; dup {
			continue
		}
		node := &stepNode{id: ref.StepID, order: ref.Order}
		g.nodes[ref.StepID] = node
		g.refs = append(g.refs, node)
	}

	var issues []PreconditionIssue
	for _, node := range g.refs {
		step, ok := steps[node.id]
		if !ok {
			continue
		}
		for _, pre := range Preconditions(step) {
			dep, inFlow := g.nodes[pre]
			if !inFlow {
				if isStep(pre) {
					issues = append(issues, PreconditionIssue{
						FlowID: flow.FlowID, StepID: node.id, Precondition: pre, Kind: IssueOutsideFlow,
					})
				}
				continue
			}
			if dep.order >= node.order {
				issues = append(issues, PreconditionIssue{
					FlowID: flow.FlowID, StepID: node.id, Precondition: pre, Kind: IssueOrderedLate,
				})
			}
			g.addEdge(dep, node)
		}
	}

	for _, node := range g.cyclic() {
		issues = append(issues, PreconditionIssue{FlowID: flow.FlowID, StepID: node.id, Kind: IssueCycle})
	}
	return issues
}

// addEdge добавляет ребро, дубликаты не учитываются в inDegree.
func (g *stepGraph) addEdge(from, to *stepNode) {
	for _, d := range from.dependents {
		if d == to {
			return
		}
	}
	from.dependents = append(from.dependents, to)
	to.inDegree++
}

// cyclic выполняет топологическую сортировку (алгоритм Кана) и возвращает
// узлы, которые не удалось упорядочить, в порядке ссылок flow.
func (g *stepGraph) cyclic() []*stepNode {
	inDegree := make(map[string]int, len(g.nodes))
	queue := make([]*stepNode, 0, len(g.refs))
	for _, node := range g.refs {
		inDegree[node.id] = node.inDegree
		if node.inDegree == 0 {
			queue = append(queue, node)
		}
	}

	sorted := make(map[string]bool, len(g.nodes))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		sorted[node.id] = true

		for _, dep := range node.dependents {
			inDegree[dep.id]--
			if inDegree[dep.id] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	var rest []*stepNode
	for _, node := range g.refs {
		if !sorted[node.id] {
			rest = append(rest, node)
		}
	}
	return rest
}
