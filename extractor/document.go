package extractor

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/MohamadsFakih/flutter-feature-generator/generrors"
	"github.com/MohamadsFakih/flutter-feature-generator/internal/httputil"
)

// documentWalker extracts endpoints from a decoded document tree. It keeps
// the source identifier for error reporting and an index of the named
// schemas available for $ref resolution.
type documentWalker struct {
	source  string
	log     Logger
	schemas nodeIndex

	pathCount int
}

// walk traverses the paths section in source order and builds one Endpoint
// per (path, verb) pair with a supported verb. Any structural problem fails
// the whole walk; no partial results are returned.
func (w *documentWalker) walk(root *yaml.Node) ([]Endpoint, []TagGroup, error) {
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, nil, w.errf("", "document root must be a mapping")
	}

	w.schemas = buildSchemaIndex(root)

	paths := deref(mapValue(root, "paths"))
	if paths == nil {
		return nil, nil, w.errf("", "document has no paths section")
	}
	if paths.Kind != yaml.MappingNode {
		return nil, nil, w.errf("paths", "paths must be a mapping, got %s", nodeKindName(paths.Kind))
	}

	var endpoints []Endpoint
	for i := 0; i+1 < len(paths.Content); i += 2 {
		pathTemplate := paths.Content[i].Value
		item := deref(paths.Content[i+1])
		w.pathCount++
		if item == nil || item.Kind != yaml.MappingNode {
			return nil, nil, w.errf("paths."+pathTemplate, "path item must be a mapping")
		}
		for j := 0; j+1 < len(item.Content); j += 2 {
			verb := strings.ToLower(item.Content[j].Value)
			if !httputil.IsEndpointVerb(verb) {
				w.log.Debug("skipping path item key", "path", pathTemplate, "key", item.Content[j].Value)
				continue
			}
			e, err := w.buildEndpoint(pathTemplate, verb, deref(item.Content[j+1]))
			if err != nil {
				return nil, nil, err
			}
			endpoints = append(endpoints, e)
		}
	}

	return endpoints, buildTagIndex(endpoints), nil
}

// buildEndpoint extracts a single operation into an Endpoint.
func (w *documentWalker) buildEndpoint(path, verb string, op *yaml.Node) (Endpoint, error) {
	section := "paths." + path + "." + verb
	if op == nil || op.Kind != yaml.MappingNode {
		return Endpoint{}, w.errf(section, "operation must be a mapping")
	}

	e := Endpoint{
		Path:        path,
		Method:      verb,
		Summary:     scalarValue(mapValue(op, "summary")),
		OperationID: scalarValue(mapValue(op, "operationId")),
	}

	if tags := deref(mapValue(op, "tags")); tags != nil {
		if tags.Kind != yaml.SequenceNode {
			return Endpoint{}, w.errf(section+".tags", "tags must be a sequence")
		}
		for _, tag := range tags.Content {
			e.Tags = append(e.Tags, scalarValue(tag))
		}
	}

	body, err := w.extractParameters(&e, mapValue(op, "parameters"), section)
	if err != nil {
		return Endpoint{}, err
	}

	// An explicit requestBody key (OAS 3.x) wins over a Swagger 2.0
	// "in: body" parameter.
	if rb := deref(mapValue(op, "requestBody")); rb != nil {
		body, err = w.extractRequestBody(rb, section+".requestBody")
		if err != nil {
			return Endpoint{}, err
		}
	}
	e.RequestBody = body

	e.Responses, err = w.extractResponses(mapValue(op, "responses"), section+".responses")
	if err != nil {
		return Endpoint{}, err
	}

	return e, nil
}

// extractParameters fills e.Parameters from the operation's parameters
// sequence. A Swagger 2.0 "in: body" parameter does not become a Parameter;
// its schema is returned as the request body instead.
func (w *documentWalker) extractParameters(e *Endpoint, params *yaml.Node, section string) (*RequestBody, error) {
	params = deref(params)
	if params == nil {
		return nil, nil
	}
	if params.Kind != yaml.SequenceNode {
		return nil, w.errf(section+".parameters", "parameters must be a sequence, got %s", nodeKindName(params.Kind))
	}

	var body *RequestBody
	for i, raw := range params.Content {
		pn := deref(raw)
		if pn == nil || pn.Kind != yaml.MappingNode {
			return nil, w.errf(fmt.Sprintf("%s.parameters[%d]", section, i), "parameter must be a mapping")
		}
		location := scalarValue(mapValue(pn, "in"))
		required := boolValue(mapValue(pn, "required"))

		if location == "body" {
			schema, err := w.resolveSchema(mapValue(pn, "schema"), fmt.Sprintf("%s.parameters[%d].schema", section, i))
			if err != nil {
				return nil, err
			}
			body = &RequestBody{Required: required, Schema: schema}
			continue
		}

		e.Parameters = append(e.Parameters, Parameter{
			Name:     scalarValue(mapValue(pn, "name")),
			Location: ParamLocation(location),
			Required: required,
			Type:     parameterType(pn),
		})
	}
	return body, nil
}

// parameterType reads the normalized type from an OAS 3.x parameter schema
// or the inline Swagger 2.0 type field. Unrecognized types become string.
func parameterType(param *yaml.Node) ParamType {
	typ := ""
	if schema := deref(mapValue(param, "schema")); schema != nil {
		typ = scalarValue(mapValue(schema, "type"))
	}
	if typ == "" {
		typ = scalarValue(mapValue(param, "type"))
	}
	switch typ {
	case "integer":
		return ParamTypeInt
	case "number":
		return ParamTypeDouble
	case "boolean":
		return ParamTypeBool
	case "array":
		return ParamTypeList
	default:
		return ParamTypeString
	}
}

// extractRequestBody extracts an OAS 3.x requestBody object, reading the
// application/json schema with one level of $ref resolved.
func (w *documentWalker) extractRequestBody(rb *yaml.Node, section string) (*RequestBody, error) {
	if rb.Kind != yaml.MappingNode {
		return nil, w.errf(section, "requestBody must be a mapping, got %s", nodeKindName(rb.Kind))
	}
	schema, err := w.resolveSchema(jsonContentSchema(rb), section+".content")
	if err != nil {
		return nil, err
	}
	return &RequestBody{
		Required: boolValue(mapValue(rb, "required")),
		Schema:   schema,
	}, nil
}

// extractResponses extracts every status-code response. Keys must be
// numeric or the literal "default"; anything else is a malformed operation.
func (w *documentWalker) extractResponses(node *yaml.Node, section string) (map[string]*Response, error) {
	node = deref(node)
	if node == nil {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, w.errf(section, "responses must be a mapping, got %s", nodeKindName(node.Kind))
	}

	responses := make(map[string]*Response, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		code := node.Content[i].Value
		if !httputil.IsStatusKey(code) {
			return nil, w.errf(section, "invalid status code %q: must be numeric or \"default\"", code)
		}
		rn := deref(node.Content[i+1])
		if rn == nil || rn.Kind != yaml.MappingNode {
			return nil, w.errf(section+"."+code, "response must be a mapping")
		}

		// OAS 3.x carries the schema under content; Swagger 2.0 directly
		// under schema.
		schemaNode := jsonContentSchema(rn)
		if schemaNode == nil {
			schemaNode = mapValue(rn, "schema")
		}
		schema, err := w.resolveSchema(schemaNode, section+"."+code)
		if err != nil {
			return nil, err
		}
		responses[code] = &Response{
			Description: scalarValue(mapValue(rn, "description")),
			Schema:      schema,
		}
	}
	return responses, nil
}

// resolveSchema decodes a schema node, replacing a top-level $ref by the
// definition it names. References nested inside the resolved definition
// stay unresolved; downstream type mapping renders them as dynamic. A nil
// node yields a nil schema.
func (w *documentWalker) resolveSchema(node *yaml.Node, section string) (*Schema, error) {
	node = deref(node)
	if node == nil {
		return nil, nil
	}
	var s Schema
	if err := node.Decode(&s); err != nil {
		return nil, &generrors.ExtractError{
			Path:    w.source,
			Section: section,
			Message: "invalid schema",
			Cause:   err,
		}
	}
	if s.Ref == "" {
		return &s, nil
	}

	name := s.Ref[strings.LastIndex(s.Ref, "/")+1:]
	target, ok := w.schemas[name]
	if !ok {
		return nil, &generrors.ReferenceError{
			Ref:     s.Ref,
			Message: "not found in components.schemas or definitions",
		}
	}
	w.log.Debug("resolved reference", "ref", s.Ref)

	var resolved Schema
	if err := target.Decode(&resolved); err != nil {
		return nil, &generrors.ReferenceError{
			Ref:     s.Ref,
			Message: "referenced schema is invalid",
			Cause:   err,
		}
	}
	return &resolved, nil
}

// errf builds an ExtractError located at the given document section.
func (w *documentWalker) errf(section, format string, args ...any) error {
	return &generrors.ExtractError{
		Path:    w.source,
		Section: section,
		Message: fmt.Sprintf(format, args...),
	}
}

// buildSchemaIndex collects the named schemas a $ref can resolve against:
// components.schemas (OAS 3.x) and definitions (Swagger 2.0). When both
// sections define the same name, components wins.
func buildSchemaIndex(root *yaml.Node) nodeIndex {
	idx := make(nodeIndex)
	if components := deref(mapValue(root, "components")); components != nil {
		for name, node := range buildNodeIndex(deref(mapValue(components, "schemas"))) {
			idx[name] = node
		}
	}
	for name, node := range buildNodeIndex(deref(mapValue(root, "definitions"))) {
		if _, ok := idx[name]; !ok {
			idx[name] = node
		}
	}
	return idx
}

// buildTagIndex groups endpoints by tag in first-appearance order. An
// endpoint with no tags lands under DefaultTag; an endpoint with several
// tags is indexed once under each distinct tag.
func buildTagIndex(endpoints []Endpoint) []TagGroup {
	var groups []TagGroup
	byName := make(map[string]int)
	add := func(tag string, endpoint int) {
		gi, ok := byName[tag]
		if !ok {
			gi = len(groups)
			byName[tag] = gi
			groups = append(groups, TagGroup{Name: tag})
		}
		groups[gi].Endpoints = append(groups[gi].Endpoints, endpoint)
	}
	for i := range endpoints {
		tags := endpoints[i].Tags
		if len(tags) == 0 {
			add(DefaultTag, i)
			continue
		}
		seen := make(map[string]bool, len(tags))
		for _, tag := range tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			add(tag, i)
		}
	}
	return groups
}

// detectVersion reads the declared specification version from the document
// root. OAS 3.x documents carry "openapi: 3.y.z", Swagger 2.0 documents
// "swagger: 2.0".
func detectVersion(root *yaml.Node) string {
	if v := scalarValue(mapValue(root, "openapi")); v != "" {
		return v
	}
	return scalarValue(mapValue(root, "swagger"))
}

// jsonContentSchema returns the schema node at content["application/json"],
// or nil when the node has no JSON content entry.
func jsonContentSchema(n *yaml.Node) *yaml.Node {
	media := deref(mapValue(deref(mapValue(n, "content")), "application/json"))
	if media == nil {
		return nil
	}
	return mapValue(media, "schema")
}

// nodeIndex provides O(1) lookup for child nodes in a MappingNode.
type nodeIndex map[string]*yaml.Node

// buildNodeIndex creates an index from key names to value nodes.
func buildNodeIndex(node *yaml.Node) nodeIndex {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	idx := make(nodeIndex, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Kind == yaml.ScalarNode {
			idx[node.Content[i].Value] = node.Content[i+1]
		}
	}
	return idx
}

// mapValue returns the value node for key within a mapping, or nil. Use
// buildNodeIndex instead when many keys of the same mapping are needed.
func mapValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// deref follows alias nodes to their anchor targets.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// documentRoot unwraps the DocumentNode produced by decoding into a
// yaml.Node, yielding the top-level mapping.
func documentRoot(n *yaml.Node) *yaml.Node {
	if n != nil && n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	return deref(n)
}

// scalarValue returns a scalar node's string value, or "" for nil or
// non-scalar nodes.
func scalarValue(n *yaml.Node) string {
	n = deref(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}

// boolValue reads a boolean scalar, defaulting to false.
func boolValue(n *yaml.Node) bool {
	return strings.EqualFold(scalarValue(n), "true")
}

// nodeKindName names a node kind for error messages.
func nodeKindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
