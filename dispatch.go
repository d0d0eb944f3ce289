package rst2html5

// EnterFunc is called before a node's children are visited.
type EnterFunc func(t *Translator, n *Node) WalkResult

// ExitFunc is called after a node's children were visited.
type ExitFunc func(t *Translator, n *Node)

// DispatchEntry says how one node kind is translated.
type DispatchEntry struct {
	Tag               string    // Output tag; the node kind when empty
	Enter             EnterFunc // Generic enter when nil
	Exit              ExitFunc  // Generic exit when nil
	FoldTypeIntoClass bool      // Node kind becomes the first class
	NoIndent          bool      // Committed without indentation (inline elements)
}

// Extensions are dispatch entries for node kinds contributed by parser
// extensions. They are merged over the built-in table when a Translator
// is constructed, see WithExtensions.
type Extensions map[Tag]DispatchEntry

var asideEntry = DispatchEntry{
	Tag:               "aside",
	Enter:             (*Translator).enterAside,
	Exit:              (*Translator).exitAside,
	FoldTypeIntoClass: true,
}

var (
	bibliographicEntry = DispatchEntry{Enter: (*Translator).enterBibliographic}
	transparentEntry   = DispatchEntry{Enter: (*Translator).transparent}
	skipEntry          = DispatchEntry{Enter: (*Translator).skipNode}
	literalBlockEntry  = DispatchEntry{
		Tag:   "pre",
		Enter: (*Translator).enterLiteralBlock,
		Exit:  (*Translator).exitLiteralBlock,
	}
	citationEntry = DispatchEntry{
		Enter:             (*Translator).enterCitation,
		Exit:              (*Translator).exitCitation,
		FoldTypeIntoClass: true,
	}
	citationReferenceEntry = DispatchEntry{
		Tag:               "a",
		Enter:             (*Translator).enterCitationReference,
		Exit:              (*Translator).exitCitationReference,
		FoldTypeIntoClass: true,
		NoIndent:          true,
	}
)

// dispatch is the built-in table. It is never modified; every Translator
// reads it directly or through a merged copy.
var dispatch = map[Tag]DispatchEntry{
	TextTag: {Enter: (*Translator).enterText},

	AbbreviationTag: {Tag: "abbr", NoIndent: true},
	AcronymTag:      {Tag: "abbr", NoIndent: true},

	AdmonitionTag: asideEntry,
	AttentionTag:  asideEntry,
	CautionTag:    asideEntry,
	DangerTag:     asideEntry,
	ErrorTag:      asideEntry,
	HintTag:       asideEntry,
	ImportantTag:  asideEntry,
	NoteTag:       asideEntry,
	TipTag:        asideEntry,
	WarningTag:    asideEntry,
	SidebarTag:    asideEntry,
	TopicTag:      asideEntry,

	AttributionTag: {Tag: "p", FoldTypeIntoClass: true},

	AddressTag:      {Enter: (*Translator).enterAddress},
	AuthorTag:       bibliographicEntry,
	AuthorsTag:      {Enter: (*Translator).enterAuthors},
	ContactTag:      bibliographicEntry,
	CopyrightTag:    bibliographicEntry,
	DateTag:         bibliographicEntry,
	OrganizationTag: bibliographicEntry,
	RevisionTag:     bibliographicEntry,
	StatusTag:       bibliographicEntry,
	VersionTag:      bibliographicEntry,
	FieldTag:        {Enter: (*Translator).enterField},
	MetaTag:         {Enter: (*Translator).enterMeta},

	BlockQuoteTag: {Tag: "blockquote", Enter: (*Translator).enterBlockQuote},
	BulletListTag: {Tag: "ul"},
	CaptionTag:    {Tag: "figcaption"},

	CitationTag:          citationEntry,
	FootnoteTag:          citationEntry,
	CitationReferenceTag: citationReferenceEntry,
	FootnoteReferenceTag: citationReferenceEntry,
	LabelTag:             {Tag: "th", Enter: (*Translator).enterLabel, Exit: (*Translator).exitLabel},

	ClassifierTag: {Enter: (*Translator).enterClassifier},
	CommentTag:    {Enter: (*Translator).enterComment},
	CompoundTag:   {Tag: "div"},
	ContainerTag:  {Tag: "div"},

	DecorationTag:         transparentEntry,
	DefinitionListItemTag: transparentEntry,
	DocinfoTag:            transparentEntry,
	FieldBodyTag:          transparentEntry,
	FieldListTag:          transparentEntry,
	FieldNameTag:          transparentEntry,
	GeneratedTag:          transparentEntry,
	OptionStringTag:       transparentEntry,
	TgroupTag:             transparentEntry,

	DefinitionTag:     {Tag: "dd"},
	DefinitionListTag: {Tag: "dl"},
	DescriptionTag:    {Tag: "td"},
	TermTag:           {Tag: "dt"},

	DoctestBlockTag: {
		Tag:               "pre",
		Enter:             (*Translator).enterLiteralBlock,
		Exit:              (*Translator).exitLiteralBlock,
		FoldTypeIntoClass: true,
	},
	LiteralBlockTag: literalBlockEntry,
	LiteralTag: {
		Tag:      "code",
		Enter:    (*Translator).enterLiteral,
		Exit:     (*Translator).exitLiteral,
		NoIndent: true,
	},
	MathTag:      {Enter: (*Translator).enterMath},
	MathBlockTag: {Enter: (*Translator).enterMath},
	RawTag:       {Enter: (*Translator).enterRaw},

	DocumentTag: {Enter: (*Translator).enterDocument, Exit: (*Translator).exitNothing},

	EmphasisTag:       {Tag: "em", NoIndent: true},
	InlineTag:         {Tag: "span", NoIndent: true},
	StrongTag:         {NoIndent: true},
	SubscriptTag:      {Tag: "sub", NoIndent: true},
	SuperscriptTag:    {Tag: "sup", NoIndent: true},
	TitleReferenceTag: {Tag: "cite", NoIndent: true},

	EnumeratedListTag: {Tag: "ol", Exit: (*Translator).exitEnumeratedList},
	ListItemTag:       {Tag: "li"},

	FigureTag: {Enter: (*Translator).enterFigure},
	ImageTag:  {Tag: "img", Exit: (*Translator).exitImage},
	LegendTag: {Tag: "div", FoldTypeIntoClass: true},
	FooterTag: {},
	HeaderTag: {},

	LineTag: {Enter: (*Translator).enterLine},
	LineBlockTag: {
		Tag:               "pre",
		Enter:             (*Translator).enterLineBlock,
		Exit:              (*Translator).exitLineBlock,
		FoldTypeIntoClass: true,
	},

	OptionListTag: {
		Enter:             (*Translator).enterOptionList,
		Exit:              (*Translator).exitOptionList,
		FoldTypeIntoClass: true,
	},
	OptionListItemTag: {Tag: "tr"},
	OptionGroupTag: {
		Tag:   "td",
		Enter: (*Translator).enterOptionGroup,
		Exit:  (*Translator).exitOptionGroup,
	},
	OptionTag: {Tag: "kbd", Enter: (*Translator).enterOption, NoIndent: true},
	OptionArgumentTag: {
		Tag:      "var",
		Enter:    (*Translator).enterOptionArgument,
		Exit:     (*Translator).exitOptionArgument,
		NoIndent: true,
	},

	ParagraphTag: {Tag: "p", Enter: (*Translator).enterParagraph},
	PendingTag:   {},
	RubricTag:    {Tag: "p", Exit: (*Translator).exitRubric, FoldTypeIntoClass: true},
	TransitionTag: {Tag: "hr"},

	ProblematicTag: {
		Tag:               "a",
		Enter:             (*Translator).enterProblematic,
		Exit:              (*Translator).exitReference,
		FoldTypeIntoClass: true,
		NoIndent:          true,
	},
	ReferenceTag: {
		Tag:      "a",
		Enter:    (*Translator).enterReference,
		Exit:     (*Translator).exitReference,
		NoIndent: true,
	},
	TargetTag: {Tag: "a", Enter: (*Translator).enterTarget, NoIndent: true},

	SectionTag:  {Enter: (*Translator).enterSection, Exit: (*Translator).exitSection},
	TitleTag:    {Exit: (*Translator).exitTitle},
	SubtitleTag: {Enter: (*Translator).enterSubtitle, Exit: (*Translator).exitSubtitle},

	SubstitutionDefinitionTag: skipEntry,
	SubstitutionReferenceTag:  skipEntry,

	SystemMessageTag: {
		Tag:   "div",
		Enter: (*Translator).enterSystemMessage,
		Exit:  (*Translator).exitSystemMessage,
	},

	TableTag:   {Enter: (*Translator).enterTable, Exit: (*Translator).exitTable},
	TheadTag:   {Enter: (*Translator).enterThead, Exit: (*Translator).exitThead},
	TbodyTag:   {},
	RowTag:     {Tag: "tr", Enter: (*Translator).enterRow},
	EntryTag:   {Exit: (*Translator).exitEntry},
	ColspecTag: {Enter: (*Translator).enterNothing, Exit: (*Translator).exitColspec},
}

// Returns the dispatch table with the extensions merged in. The built-in
// table is returned as is when there is nothing to merge.
func mergeDispatch(ext Extensions) map[Tag]DispatchEntry {
	if len(ext) == 0 {
		return dispatch
	}
	table := make(map[Tag]DispatchEntry, len(dispatch)+len(ext))
	for k, v := range dispatch {
		table[k] = v
	}
	for k, v := range ext {
		table[k] = v
	}
	return table
}
