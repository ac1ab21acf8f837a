// This file defines the data structures passed to the Dart templates.
// Builders in template_builders.go populate these from a Feature; the
// structures carry precomputed names and lists so the templates stay free
// of naming logic.

package render

// FeatureNames carries the case variants of a feature name used across
// templates.
type FeatureNames struct {
	// Raw is the snake_case feature name, e.g. "user_profile"
	Raw string
	// Pascal is the PascalCase form, e.g. "UserProfile"
	Pascal string
	// Camel is the camelCase form, e.g. "userProfile"
	Camel string
}

// ParamData describes one method parameter or event field.
type ParamData struct {
	// Name is the Dart parameter name (camelCase, reserved words escaped)
	Name string
	// Type is the Dart declaration type
	Type string
	// Annotation is the Retrofit annotation, e.g. "@Path('id')" or "@Body()"
	Annotation string
}

// MethodData describes one endpoint method. The same structure feeds the
// service, source, repository, use case and bloc templates so that every
// layer derives identical names for the same endpoint.
type MethodData struct {
	// Name is the Dart method name
	Name string
	// Summary is the endpoint summary used as a doc comment (may be empty)
	Summary string
	// Verb is the Retrofit annotation name: GET, POST, PUT, DELETE, PATCH
	Verb string
	// Path is the endpoint path template, e.g. "/users/{id}"
	Path string
	// ReturnType is the success model class name or "dynamic"
	ReturnType string
	// StateField is the per-endpoint state field name
	StateField string
	// StateClass is the feature state class name, e.g. "UserProfileState"
	StateClass string
	// EventClass is the BLoC event subclass name
	EventClass string
	// Handler is the private BLoC handler method name, e.g. "_onGetUsers"
	Handler string
	// AnnotatedParams carries the annotated service parameters,
	// e.g. ["@Path('id') int id", "@Body() PlaceOrderRequest body"]
	AnnotatedParams []string
	// ParamList carries the plain parameters, e.g. ["int id"]
	ParamList []string
	// ArgList carries the delegation arguments, e.g. ["id", "body"]
	ArgList []string
	// EventArgs carries the arguments read off an event, e.g. ["event.id"]
	EventArgs []string
}

// EventData describes one BLoC event subclass.
type EventData struct {
	// ClassName is the event subclass name, e.g. "GetUsersEvent"
	ClassName string
	// BaseClass is the abstract event base class name
	BaseClass string
	// Fields carries the event payload fields
	Fields []ParamData
	// FactoryVariant is the camelCase variant name used when extending a
	// factory-style event union, e.g. "getUsers"
	FactoryVariant string
}

// StateFieldData describes one nullable per-endpoint state field.
type StateFieldData struct {
	// Name is the state field name, e.g. "getUsersResponse"
	Name string
	// Type is the nullable Dart type, e.g. "GetUsersResponse?" or "dynamic"
	Type string
	// StateClass is the feature state class name
	StateClass string
	// FactoryVariant is the variant name used when extending a
	// factory-style state union, e.g. "getUsersSuccess"
	FactoryVariant string
	// VariantClass is the Pascal variant class name for factory unions
	VariantClass string
	// BareType is the non-nullable Dart type carried by factory variants
	BareType string
}

// ModelFieldData describes one field of a generated model class.
type ModelFieldData struct {
	// Name is the Dart field name (camelCase)
	Name string
	// JSONKey is the original property name used in fromJson/toJson
	JSONKey string
	// Type is the Dart field type
	Type string
	// Required is true when the property appears in the schema's required list
	Required bool
	// Default is the default value expression for optional fields
	Default string
	// FromJSON is the full fromJson extraction expression
	FromJSON string
}

// ModelData describes one model class file.
type ModelData struct {
	// ClassName is the model class name
	ClassName string
	// Fields carries the model's fields in schema property order
	Fields []ModelFieldData
}

// ServiceFileData is the template data for the Retrofit service file.
type ServiceFileData struct {
	Names FeatureNames
	// ImportLines carries complete import statements including separators
	ImportLines []string
	// FileStem is the service file name without extension, for the part directive
	FileStem  string
	ClassName string
	Methods   []MethodData
}

// SourceFileData is the template data for the data source interface file.
type SourceFileData struct {
	Names       FeatureNames
	ImportLines []string
	ClassName   string
	Methods     []MethodData
}

// SourceImplFileData is the template data for the data source implementation.
type SourceImplFileData struct {
	Names        FeatureNames
	ImportLines  []string
	ClassName    string
	SourceClass  string
	ServiceClass string
	Methods      []MethodData
}

// RepositoryFileData is the template data for the domain repository interface.
type RepositoryFileData struct {
	Names       FeatureNames
	ImportLines []string
	ClassName   string
	Methods     []MethodData
}

// RepositoryImplFileData is the template data for the repository implementation.
type RepositoryImplFileData struct {
	Names           FeatureNames
	ImportLines     []string
	ClassName       string
	RepositoryClass string
	SourceClass     string
	Methods         []MethodData
}

// UseCaseFileData is the template data for the use case aggregate.
type UseCaseFileData struct {
	Names           FeatureNames
	ImportLines     []string
	ClassName       string
	RepositoryClass string
	Methods         []MethodData
}

// EventFileData is the template data for the BLoC event file.
type EventFileData struct {
	Names       FeatureNames
	ImportLines []string
	BaseClass   string
	Events      []EventData
}

// StateFileData is the template data for the BLoC state file.
type StateFileData struct {
	Names       FeatureNames
	ImportLines []string
	ClassName   string
	Fields      []StateFieldData
}

// BlocFileData is the template data for the BLoC file.
type BlocFileData struct {
	Names        FeatureNames
	ImportLines  []string
	ClassName    string
	EventBase    string
	StateClass   string
	UseCaseClass string
	Methods      []MethodData
}

// ScreenFileData is the template data for the view stub.
type ScreenFileData struct {
	Names       FeatureNames
	ImportLines []string
	ClassName   string
	BlocClass   string
	StateClass  string
}
