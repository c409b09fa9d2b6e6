package engine

// LLM prompt templates — data only, no logic.

// summarizeTranscriptPrompt asks for a short summary of a timestamped transcript.
// Args: max bullet points, transcript text.
const summarizeTranscriptPrompt = `Summarize the video transcript below for someone deciding whether to watch it.

Respond with plain text only, no markdown headings:
- First line: one sentence describing what the video is about.
- Then up to %d bullet points ("- " prefix) with the key points, each ending with the
  [m:ss] timestamp where it is discussed, copied from the transcript.
- Write in the SAME LANGUAGE as the transcript.
- Do NOT invent information not present in the transcript.

Transcript:
%s`
