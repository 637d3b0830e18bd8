package extract

const AuthorExtractPrompt = `
# Task Context
You are a helpful assistant specialized in reading the header block of academic papers. You will be provided with the text between a paper's title and its abstract.

# Detailed Task Description & Rules
- Extract every author of the paper, in the order they are listed.
- For each author record the name exactly as printed, the affiliation the author markers point at, and the email address if one is given.
- Resolve footnote markers (numbers, daggers, asterisks) to the affiliation they reference.
- An author may lack an affiliation or an email; leave those fields empty rather than guessing.
- Do not invent authors that are not in the text, and do not include non-author names such as editors.

# Output Formatting
Return a JSON object listing the authors in paper order, each with name, affiliation, email and a 1-based order field.
`

const ConceptExtractPrompt = `
# Task Context
You are a helpful assistant specialized in building knowledge graphs from academic papers. You will be provided with a paper's title and abstract.

# Detailed Task Description & Rules
- Identify the research concepts discussed by the paper. Each concept has a name (capitalized), a type and a comprehensive description.
- Allowed concept types: %s
- Then identify relationships between pairs of the concepts you extracted. Each relationship has a source concept name, a target concept name, a description of why the concepts are related, and an integer strength from 1 (weak) to 10 (strong).
- Only relate concepts you extracted in the first step; never reference a concept that is not in your entity list.
- Base everything on the provided text. Do not make up concepts or relationships that are not supported by it.

# Immediate Task Description or Request
Extract the concepts and relationships from the following paper.
`
